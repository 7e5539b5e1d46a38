package dto

// ReservationRequest keys a reserve or cancel mutation by meal and date.
type ReservationRequest struct {
	MealID int    `json:"meal_id" validate:"required,min=1"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
}

// JustificationRequest records why a reserved meal was not used. The index
// points into the fixed list of justification options the upstream defines.
type JustificationRequest struct {
	StudentJustification int `json:"studentJustification" validate:"gte=0"`
}
