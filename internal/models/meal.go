package models

// Meal is a reservable meal slot in the campus restaurant catalog.
// IDs 1..4 map to morning snack, lunch, afternoon snack and night snack.
// The reservation window is expressed as hour offsets from TimeStart:
// reservation opens QtdTimeReservationStart hours before the meal and
// closes QtdTimeReservationEnd hours before it.
type Meal struct {
	ID                      int     `json:"id"`
	Description             string  `json:"description"`
	TimeStart               string  `json:"timeStart"` // HH:mm:ss
	TimeEnd                 string  `json:"timeEnd"`   // HH:mm:ss
	QtdTimeReservationStart float64 `json:"qtdTimeReservationStart"`
	QtdTimeReservationEnd   float64 `json:"qtdTimeReservationEnd"`
	CampusID                int     `json:"campus_id"`
}

// MenuDay is the occurrence of a meal on a specific calendar date, carrying
// that day's permission and reservation state. Permission is a boolean-as-int
// as served by the upstream API.
type MenuDay struct {
	ID                   int     `json:"id"`
	Date                 string  `json:"date"` // yyyy-MM-dd
	Description          string  `json:"description"`
	Permission           int     `json:"permission"`
	Agendado             bool    `json:"agendado"`
	CanceledByStudent    bool    `json:"canceled_by_student"`
	AbsenceJustification *string `json:"absenceJustification,omitempty"`
	MealID               int     `json:"meal_id"`
	CampusID             int     `json:"campus_id"`
}

// MenuEntry pairs a day's menu with its meal definition. Meal is nil when the
// upstream published no meal for the slot; such entries always classify as
// unavailable.
type MenuEntry struct {
	Meal *Meal    `json:"meal,omitempty"`
	Menu *MenuDay `json:"menu"`
}
