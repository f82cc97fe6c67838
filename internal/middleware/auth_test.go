package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"scopri.app/eventilocali/internal/entity"
	userService "scopri.app/eventilocali/internal/modules/user/service"
)

const testSecret = "test_secret"

func signToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := userService.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	router.GET("/probe", chain...)
	return router
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m.RequireAuth())
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, entity.RoleReviewer))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), entity.RoleReviewer)
}

func TestRequireAuth_TokenFromQueryParam(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m.RequireAuth())
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/probe?token="+signToken(t, userID, entity.RoleUser), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestRequireAuth_MissingToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	m := NewAuthMiddleware("another_secret")
	router := newTestRouter(m.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), entity.RoleUser))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m.OptionalAuth())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth_AttachesIdentityWhenPresent(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m.OptionalAuth())
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, entity.RoleUser))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestRequireAdmin_DeniesLowerRoles(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m.RequireAuth(), m.RequireAdmin())

	for _, role := range []string{entity.RoleUser, entity.RoleReviewer} {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), role))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, "role %s should be denied", role)
	}
}

func TestRequireReviewer_AllowsReviewerAndAdmin(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	router := newTestRouter(m.RequireAuth(), m.RequireReviewer())

	for _, role := range []string{entity.RoleReviewer, entity.RoleAdmin} {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), role))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "role %s should be allowed", role)
	}
}
