package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ifcampus/meal-gateway/internal/dto"
	"github.com/ifcampus/meal-gateway/internal/service"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
	"github.com/ifcampus/meal-gateway/pkg/response"
)

// ReservationHandler exposes the reservation mutations.
type ReservationHandler struct {
	service *service.ReservationService
}

// NewReservationHandler creates a new handler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: svc}
}

// Reserve godoc
// @Summary Reserve a meal
// @Description Book the given meal for the student on the given date
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body dto.ReservationRequest true "Reservation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reservations [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reservation payload"))
		return
	}

	if err := h.service.Reserve(c.Request.Context(), session, req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"message": "agendamento realizado"})
}

// Cancel godoc
// @Summary Cancel a reservation
// @Description Withdraw the student's reservation for the given meal and date
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body dto.ReservationRequest true "Cancellation payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reservations/cancel [put]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cancellation payload"))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), session, req); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Justify godoc
// @Summary Justify a missed meal
// @Description Record the student's absence justification for a ticket
// @Tags Reservations
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param payload body dto.JustificationRequest true "Justification payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /tickets/{id}/justification [put]
func (h *ReservationHandler) Justify(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	ticketID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid ticket id"))
		return
	}

	var req dto.JustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid justification payload"))
		return
	}

	if err := h.service.Justify(c.Request.Context(), session, ticketID, req); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
