package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"scopri.app/eventilocali/internal/authz"
	userService "scopri.app/eventilocali/internal/modules/user/service"
)

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

func (m *AuthMiddleware) parseToken(c *gin.Context) (*userService.Claims, error) {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	// Fallback to query parameter "token" (useful for WebSockets)
	if tokenString == "" {
		tokenString = c.Query("token")
	}

	if tokenString == "" {
		return nil, fmt.Errorf("no token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &userService.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*userService.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.parseToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and lets the request through anonymously otherwise. Used by event submission.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := m.parseToken(c); err == nil {
			c.Set("user_id", claims.Subject)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// RequireAction gates a route on the authorization policy for the given action.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireAction(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if !authz.Allow(role, action) {
			c.JSON(http.StatusForbidden, gin.H{"error": "accesso negato: ruolo non autorizzato"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) RequireReviewer() gin.HandlerFunc {
	return m.RequireAction(authz.ActionReviewEvents)
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireAction(authz.ActionManageUsers)
}
