package dto

import (
	"time"

	"github.com/google/uuid"
	"scopri.app/eventilocali/internal/entity"
	commonDto "scopri.app/eventilocali/pkg/dto"
)

type SubmitEventRequest struct {
	Name     string    `json:"name" binding:"required,max=255"`
	Category string    `json:"category" binding:"required,max=100"`
	Date     time.Time `json:"date" binding:"required"`
	Location string    `json:"location" binding:"required,max=255"`
	Link     *string   `json:"link" binding:"omitempty,url"`
}

type UpdateEventRequest struct {
	Name     string    `json:"name" binding:"required,max=255"`
	Category string    `json:"category" binding:"required,max=100"`
	Date     time.Time `json:"date" binding:"required"`
	Location string    `json:"location" binding:"required,max=255"`
	Link     *string   `json:"link" binding:"omitempty,url"`
}

type EventResponse struct {
	ID         uuid.UUID                  `json:"id"`
	Name       string                     `json:"name"`
	Category   string                     `json:"category"`
	Date       time.Time                  `json:"date"`
	Location   string                     `json:"location"`
	Link       *string                    `json:"link,omitempty"`
	Status     string                     `json:"status"`
	ReportedBy string                     `json:"reported_by"`
	Reporter   *commonDto.ReporterResponse `json:"reporter,omitempty"`
	ClickCount int                        `json:"click_count"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// NewEventResponse derives the outward event shape, including the reporter
// display name resolved from the linked user at read time.
func NewEventResponse(e *entity.Event) EventResponse {
	res := EventResponse{
		ID:         e.ID,
		Name:       e.Name,
		Category:   e.Category,
		Date:       e.Date,
		Location:   e.Location,
		Link:       e.Link,
		Status:     e.Status,
		ReportedBy: e.ReporterName(),
		ClickCount: e.ClickCount,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.Reporter != nil {
		reporter := commonDto.ReporterResponse{
			Username:  e.Reporter.Username,
			FirstName: e.Reporter.FirstName,
			LastName:  e.Reporter.LastName,
		}
		if e.Reporter.Instagram.ShowProfile {
			reporter.InstagramAt = e.Reporter.Instagram.Username
		}
		res.Reporter = &reporter
	}
	return res
}

// NewEventResponses maps a slice of entities.
func NewEventResponses(events []entity.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return out
}
