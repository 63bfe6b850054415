package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/pkg/cookie"
	"hotel-booking-core/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxActorKey = "actor"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		a, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		setActor(c, a)
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present. A missing
// or invalid token leaves the request anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		a, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Debug("ignoring invalid token on optional auth route", "error", err.Error())
			c.Next()
			return
		}

		setActor(c, a)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func setActor(c *gin.Context, a actor.Actor) {
	c.Set(ctxActorKey, a)
	c.Set("jwt_claims", map[string]any{
		"user_id": a.ID.String(),
		"role":    a.Role.String(),
	})
}

// GetActor returns the verified actor, or the anonymous actor when the
// request carried no valid token.
func GetActor(c *gin.Context) actor.Actor {
	if v, exists := c.Get(ctxActorKey); exists {
		if a, ok := v.(actor.Actor); ok {
			return a
		}
	}
	return actor.Actor{}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	a := GetActor(c)
	if a.IsAnonymous() {
		return uuid.Nil, false
	}
	return a.ID, true
}
