package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ifcampus/meal-gateway/internal/models"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

// TicketCategory is one of the four server-side scheduling buckets.
type TicketCategory string

const (
	CategoryToUse    TicketCategory = "to-use"
	CategoryUsed     TicketCategory = "used"
	CategoryCanceled TicketCategory = "canceled"
	CategoryNotUsed  TicketCategory = "not-used"
)

// Categories lists the buckets in the order the history feed fetches them.
var Categories = []TicketCategory{CategoryToUse, CategoryUsed, CategoryCanceled, CategoryNotUsed}

// TicketRepository reads scheduling history and performs the reservation
// mutations against the upstream API.
type TicketRepository struct {
	gw remote
}

// NewTicketRepository constructs a ticket repository over the upstream gateway.
func NewTicketRepository(gw remote) *TicketRepository {
	return &TicketRepository{gw: gw}
}

// ticketPage is the paginated wrapper the upstream serves history in.
type ticketPage struct {
	Data []models.Ticket `json:"data"`
}

// History lists the student's tickets in the given category.
func (r *TicketRepository) History(ctx context.Context, token string, category TicketCategory) ([]models.Ticket, error) {
	items, err := r.gw.Get(ctx, token, fmt.Sprintf("/student/schedulings/%s?page=1", category))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var page ticketPage
	if err := json.Unmarshal(items[0], &page); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, "unexpected ticket payload")
	}
	return page.Data, nil
}

// reservationBody keys a reservation mutation by meal and date.
type reservationBody struct {
	MealID int    `json:"meal_id"`
	Date   string `json:"date"`
}

// Reserve books the meal for the student on the given date.
func (r *TicketRepository) Reserve(ctx context.Context, token string, mealID int, date string) error {
	_, err := r.gw.Post(ctx, token, "/student/schedulings/new", reservationBody{MealID: mealID, Date: date})
	return err
}

// Cancel withdraws an existing reservation.
func (r *TicketRepository) Cancel(ctx context.Context, token string, mealID int, date string) error {
	_, err := r.gw.Put(ctx, token, "/student/schedulings/cancel", reservationBody{MealID: mealID, Date: date})
	return err
}

// Justify records the student's absence justification for a ticket.
func (r *TicketRepository) Justify(ctx context.Context, token string, ticketID, justificationIndex int) error {
	body := map[string]int{"studentJustification": justificationIndex}
	_, err := r.gw.Put(ctx, token, fmt.Sprintf("/student/schedulings/student-justification/%d", ticketID), body)
	return err
}
