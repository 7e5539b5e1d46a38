package models

// TicketMenu is the menu snapshot embedded in a scheduling ticket.
type TicketMenu struct {
	ID          int    `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	CampusID    int    `json:"campus_id"`
	MealID      int    `json:"meal_id"`
}

// Ticket is a historical scheduling record of a student's interaction with a
// menu day. Immutable once fetched; used only for display.
type Ticket struct {
	ID                   int     `json:"id"`
	Date                 string  `json:"date"`
	DateInsert           string  `json:"dateInsert"`
	Time                 string  `json:"time"`
	WasPresent           int     `json:"wasPresent"`
	MealID               int     `json:"meal_id"`
	StudentID            int     `json:"student_id"`
	CampusID             int     `json:"campus_id"`
	AbsenceJustification *string `json:"absenceJustification"`
	CanceledByStudent    int     `json:"canceled_by_student"`
	TicketCode           *string `json:"ticketCode"`
	MenuID               int     `json:"menu_id"`
	StudentJustification *string `json:"studentJustification"`

	Menu TicketMenu `json:"menu"`
	Meal Meal       `json:"meal"`
}
