package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ifcampus/meal-gateway/internal/middleware"
	"github.com/ifcampus/meal-gateway/internal/models"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestReservationHandlerRequiresSession(t *testing.T) {
	h := NewReservationHandler(nil)

	c, rec := testContext(t)
	c.Request = httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(`{"meal_id":2,"date":"2026-09-02"}`))

	h.Reserve(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReservationHandlerRejectsMalformedBody(t *testing.T) {
	h := NewReservationHandler(nil)

	c, rec := testContext(t)
	c.Set(middleware.ContextSessionKey, &models.SessionClaims{StudentID: 7, UpstreamToken: "tok"})
	c.Request = httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader("not-json"))

	h.Reserve(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestReservationHandlerJustifyRejectsBadTicketID(t *testing.T) {
	h := NewReservationHandler(nil)

	c, rec := testContext(t)
	c.Set(middleware.ContextSessionKey, &models.SessionClaims{StudentID: 7, UpstreamToken: "tok"})
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest(http.MethodPut, "/tickets/abc/justification", strings.NewReader(`{"studentJustification":1}`))

	h.Justify(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMenuHandlerStatusLegend(t *testing.T) {
	h := NewMenuHandler(nil)

	c, rec := testContext(t)
	c.Request = httptest.NewRequest(http.MethodGet, "/meals/status-legend", nil)

	h.StatusLegend(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Len(t, envelope.Data, 6)
}
