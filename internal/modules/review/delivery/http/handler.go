package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reviewDto "scopri.app/eventilocali/internal/modules/review/dto"
	reviewService "scopri.app/eventilocali/internal/modules/review/service"
	"scopri.app/eventilocali/pkg/apperror"
	"scopri.app/eventilocali/pkg/response"
	"scopri.app/eventilocali/pkg/validator"
)

type ReviewHandler struct {
	service reviewService.ReviewService
}

func NewReviewHandler(service reviewService.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) ListPending(c *gin.Context) {
	events, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *ReviewHandler) Approve(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	event, err := h.service.Approve(c.Request.Context(), c.GetString("role"), eventID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Evento approvato con successo",
		"event":   event,
	})
}

func (h *ReviewHandler) Reject(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	event, err := h.service.Reject(c.Request.Context(), c.GetString("role"), eventID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Evento rifiutato",
		"event":   event,
	})
}

func (h *ReviewHandler) Modify(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	var req reviewDto.ModifyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	event, err := h.service.Modify(c.Request.Context(), c.GetString("role"), eventID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Evento modificato con successo",
		"event":   event,
	})
}

func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
