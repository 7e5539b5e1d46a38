package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ifcampus/meal-gateway/internal/mealstatus"
	"github.com/ifcampus/meal-gateway/internal/service"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
	"github.com/ifcampus/meal-gateway/pkg/response"
)

// MenuHandler serves the day-menu screen and the reservable-meal catalog.
type MenuHandler struct {
	service *service.MenuService
}

// NewMenuHandler creates a new handler.
func NewMenuHandler(svc *service.MenuService) *MenuHandler {
	return &MenuHandler{service: svc}
}

// ListByDay godoc
// @Summary List menus for a day
// @Description Returns the classified meal slots for the requested date, today when omitted
// @Tags Menus
// @Produce json
// @Param date query string false "ISO date (yyyy-MM-dd)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /menus [get]
func (h *MenuHandler) ListByDay(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, cached, err := h.service.MenusByDay(c.Request.Context(), session, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, map[string]interface{}{"cached": cached})
}

// AllowedMeals godoc
// @Summary List reservable meals
// @Description Returns the meals the student is allowed to reserve
// @Tags Menus
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /meals/allowed [get]
func (h *MenuHandler) AllowedMeals(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	meals, cached, err := h.service.AllowedMeals(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, meals, map[string]interface{}{"cached": cached})
}

// StatusLegend godoc
// @Summary Meal status legend
// @Description Returns every meal status with its display label, color and icon
// @Tags Menus
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /meals/status-legend [get]
func (h *MenuHandler) StatusLegend(c *gin.Context) {
	response.JSON(c, http.StatusOK, mealstatus.Legend())
}
