package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ifcampus/meal-gateway/internal/service"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
	"github.com/ifcampus/meal-gateway/pkg/response"
)

// HistoryHandler serves the aggregated meal-history feed.
type HistoryHandler struct {
	service *service.HistoryService
}

// NewHistoryHandler creates a new handler.
func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// Feed godoc
// @Summary Meal history feed
// @Description Returns the student's recent tickets across all categories, most recent first
// @Tags History
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /tickets/history [get]
func (h *HistoryHandler) Feed(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	feed, cached, err := h.service.Feed(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, feed, map[string]interface{}{"cached": cached})
}
