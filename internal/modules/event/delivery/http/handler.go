package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"scopri.app/eventilocali/internal/modules/event/dto"
	eventService "scopri.app/eventilocali/internal/modules/event/service"
	"scopri.app/eventilocali/pkg/apperror"
	"scopri.app/eventilocali/pkg/response"
	"scopri.app/eventilocali/pkg/validator"
)

type EventHandler struct {
	service eventService.EventService
}

func NewEventHandler(service eventService.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Submit accepts a new event report. The route runs behind OptionalAuth: a
// logged-in caller becomes the reporter, an anonymous caller leaves the
// reporter empty.
func (h *EventHandler) Submit(c *gin.Context) {
	var req dto.SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	reporterID := response.OptionalUserID(c)

	event, err := h.service.Submit(c.Request.Context(), reporterID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) ListApproved(c *gin.Context) {
	events, err := h.service.ListApproved(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) MyEvents(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	events, err := h.service.MyEvents(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Update(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	event, err := h.service.UserEdit(c.Request.Context(), userID, eventID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Evento aggiornato con successo",
		"event":   event,
	})
}
