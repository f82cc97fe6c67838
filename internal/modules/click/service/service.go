package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	clickRepo "scopri.app/eventilocali/internal/modules/click/repository"
	eventRepo "scopri.app/eventilocali/internal/modules/event/repository"
	"scopri.app/eventilocali/pkg/apperror"
)

// ClickResult reports the outcome of a click: the fresh counter and whether
// this user had already been counted.
type ClickResult struct {
	ClickCount     int  `json:"clickCount"`
	AlreadyClicked bool `json:"alreadyClicked"`
}

type ClickService interface {
	RecordClick(ctx context.Context, eventID, userID uuid.UUID) (*ClickResult, error)
}

type clickService struct {
	clicks clickRepo.ClickRepository
	events eventRepo.EventRepository
}

func NewClickService(clicks clickRepo.ClickRepository, events eventRepo.EventRepository) ClickService {
	return &clickService{
		clicks: clicks,
		events: events,
	}
}

func (s *clickService) RecordClick(ctx context.Context, eventID, userID uuid.UUID) (*ClickResult, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evento non trovato: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	inserted, err := s.clicks.Record(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	// Re-read for the counter so concurrent clicks report a consistent value.
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &ClickResult{
		ClickCount:     event.ClickCount,
		AlreadyClicked: !inserted,
	}, nil
}
