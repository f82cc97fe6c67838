package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	clickService "scopri.app/eventilocali/internal/modules/click/service"
	"scopri.app/eventilocali/pkg/apperror"
	"scopri.app/eventilocali/pkg/response"
)

type ClickHandler struct {
	service clickService.ClickService
}

func NewClickHandler(service clickService.ClickService) *ClickHandler {
	return &ClickHandler{service: service}
}

func (h *ClickHandler) Click(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrBadRequest)
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.service.RecordClick(c.Request.Context(), eventID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"clickCount":     result.ClickCount,
		"alreadyClicked": result.AlreadyClicked,
	})
}
