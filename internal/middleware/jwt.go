package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ifcampus/meal-gateway/internal/service"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
	"github.com/ifcampus/meal-gateway/pkg/response"
)

// ContextSessionKey is the gin context key storing the session claims.
const ContextSessionKey = "currentSession"

// Session protects routes by requiring a valid session token.
func Session(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, claims)
		c.Next()
	}
}
