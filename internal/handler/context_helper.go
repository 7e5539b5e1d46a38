package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ifcampus/meal-gateway/internal/middleware"
	"github.com/ifcampus/meal-gateway/internal/models"
)

func sessionFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
