package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"scopri.app/eventilocali/internal/entity"
	eventDto "scopri.app/eventilocali/internal/modules/event/dto"
	eventService "scopri.app/eventilocali/internal/modules/event/service"
)

type fakeEventService struct {
	eventService.EventService

	events []eventDto.EventResponse
}

func (s *fakeEventService) Submit(ctx context.Context, reporterID *uuid.UUID, req eventDto.SubmitEventRequest) (*eventDto.EventResponse, error) {
	res := eventDto.EventResponse{
		ID:         uuid.New(),
		Name:       req.Name,
		Category:   req.Category,
		Date:       req.Date,
		Location:   req.Location,
		Status:     entity.StatusPending,
		ReportedBy: entity.AnonymousReporter,
	}
	return &res, nil
}

func (s *fakeEventService) ListApproved(ctx context.Context) ([]eventDto.EventResponse, error) {
	return s.events, nil
}

func (s *fakeEventService) MyEvents(ctx context.Context, userID uuid.UUID) ([]eventDto.EventResponse, error) {
	return s.events, nil
}

func newEventRouter(svc eventService.EventService, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEventHandler(svc)

	router := gin.New()
	if userID != nil {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", userID.String())
		})
	}
	router.GET("/api/events", h.ListApproved)
	router.POST("/api/events", h.Submit)
	router.GET("/api/events/my-events", h.MyEvents)
	return router
}

func approvedEvents() []eventDto.EventResponse {
	return []eventDto.EventResponse{
		{ID: uuid.New(), Name: "Concerto in Piazza", Status: entity.StatusApproved},
		{ID: uuid.New(), Name: "Festa Medievale", Status: entity.StatusApproved},
	}
}

func TestEventHandler_ListApproved_ReturnsBareArray(t *testing.T) {
	router := newEventRouter(&fakeEventService{events: approvedEvents()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []eventDto.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Concerto in Piazza", body[0].Name)
}

func TestEventHandler_MyEvents_ReturnsBareArray(t *testing.T) {
	userID := uuid.New()
	router := newEventRouter(&fakeEventService{events: approvedEvents()}, &userID)

	req := httptest.NewRequest(http.MethodGet, "/api/events/my-events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []eventDto.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestEventHandler_Submit_ReturnsCreatedEvent(t *testing.T) {
	router := newEventRouter(&fakeEventService{}, nil)

	payload, err := json.Marshal(eventDto.SubmitEventRequest{
		Name:     "Mercatino dell'Antiquariato",
		Category: "Mercati",
		Date:     time.Now().Add(24 * time.Hour),
		Location: "Piazza Grande",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	// The created event is the response body itself, not wrapped in an
	// envelope.
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "id")
	assert.Contains(t, body, "status")
	assert.NotContains(t, body, "event")
	assert.NotContains(t, body, "message")

	var event eventDto.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	assert.Equal(t, "Mercatino dell'Antiquariato", event.Name)
	assert.Equal(t, entity.StatusPending, event.Status)
}
