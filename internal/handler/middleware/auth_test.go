//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/handler/middleware"
	"hotel-booking-core/internal/pkg/config"
	"hotel-booking-core/internal/pkg/cookie"
	"hotel-booking-core/internal/pkg/jwt"
	"hotel-booking-core/internal/usecase"
	"hotel-booking-core/tests/common/authtest"
	"hotel-booking-core/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{Secret: "middleware-test-secret", Duration: "1h"}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	validator := usecase.NewTokenValidator(jwt.NewService(testJWT.Secret, time.Hour))
	auth := middleware.NewAuthMiddleware(validator)

	echoActor := func(c *gin.Context) {
		a := middleware.GetActor(c)
		c.JSON(http.StatusOK, gin.H{"id": a.ID.String(), "role": a.Role.String(), "anonymous": a.IsAnonymous()})
	}

	r := gin.New()
	r.GET("/required", auth.RequireAuth(), echoActor)
	r.GET("/optional", auth.OptionalAuth(), echoActor)
	return r
}

type actorBody struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Anonymous bool   `json:"anonymous"`
}

func TestRequireAuth(t *testing.T) {
	router := newAuthRouter(t)
	helper := authtest.NewJWTHelper(testJWT)
	userID := uuid.New()

	t.Run("bearer header resolves the actor", func(t *testing.T) {
		token := helper.GenerateToken(t, userID, actor.RoleHotel)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/required", nil, token)

		var body actorBody
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body.ID)
		assert.Equal(t, "hotel", body.Role)
		assert.False(t, body.Anonymous)
	})

	t.Run("access token cookie resolves the actor", func(t *testing.T) {
		token := helper.GenerateToken(t, userID, actor.RoleSuperAdmin)
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: token}}
		rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/required", nil, cookies, "")

		var body actorBody
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "super-admin", body.Role)
	})

	t.Run("missing token is 401", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/required", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("expired token is 401", func(t *testing.T) {
		token := helper.CreateExpiredToken(t, userID, actor.RoleUser)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/required", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("token signed with another secret is 401", func(t *testing.T) {
		other := authtest.NewJWTHelper(config.JWTConfig{Secret: "someone-else", Duration: "1h"})
		token := other.GenerateToken(t, userID, actor.RoleUser)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/required", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func TestOptionalAuth(t *testing.T) {
	router := newAuthRouter(t)
	helper := authtest.NewJWTHelper(testJWT)

	tests := []struct {
		name          string
		token         func(t *testing.T) string
		wantAnonymous bool
	}{
		{"no token stays anonymous", func(*testing.T) string { return "" }, true},
		{"garbage token stays anonymous", func(*testing.T) string { return "not-a-jwt" }, true},
		{"valid token authenticates", func(t *testing.T) string { return helper.GenerateToken(t, uuid.New(), actor.RoleUser) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, router, http.MethodGet, "/optional", nil, tt.token(t))

			var body actorBody
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
			require.Equal(t, tt.wantAnonymous, body.Anonymous)
			if tt.wantAnonymous {
				assert.Equal(t, uuid.Nil.String(), body.ID)
			}
		})
	}
}
