package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	notifService "scopri.app/eventilocali/internal/modules/notification/service"
)

type fakeNotificationService struct {
	notifService.NotificationService

	unread int64
}

func (s *fakeNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.unread, nil
}

func newNotificationRouter(svc notifService.NotificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(svc, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
	})
	router.GET("/api/notifications/unread-count", h.UnreadCount)
	return router
}

func TestNotificationHandler_UnreadCount_ResponseShape(t *testing.T) {
	router := newNotificationRouter(&fakeNotificationService{unread: 3})

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/unread-count", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body["unreadCount"])
	_, legacyKey := body["count"]
	assert.False(t, legacyKey)
}
