package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"scopri.app/eventilocali/internal/entity"
	eventDto "scopri.app/eventilocali/internal/modules/event/dto"
	eventRepo "scopri.app/eventilocali/internal/modules/event/repository"
	searchService "scopri.app/eventilocali/internal/modules/search/service"
	"scopri.app/eventilocali/pkg/apperror"
)

type EventService interface {
	Submit(ctx context.Context, reporterID *uuid.UUID, req eventDto.SubmitEventRequest) (*eventDto.EventResponse, error)
	ListApproved(ctx context.Context) ([]eventDto.EventResponse, error)
	MyEvents(ctx context.Context, userID uuid.UUID) ([]eventDto.EventResponse, error)
	UserEdit(ctx context.Context, userID, eventID uuid.UUID, req eventDto.UpdateEventRequest) (*eventDto.EventResponse, error)
}

type eventService struct {
	repo   eventRepo.EventRepository
	search searchService.EventSearchService
}

func NewEventService(repo eventRepo.EventRepository, search searchService.EventSearchService) EventService {
	return &eventService{
		repo:   repo,
		search: search,
	}
}

func (s *eventService) Submit(ctx context.Context, reporterID *uuid.UUID, req eventDto.SubmitEventRequest) (*eventDto.EventResponse, error) {
	event := &entity.Event{
		Status:     entity.StatusPending,
		ReporterID: reporterID,
	}
	ApplyEventFields(event, req.Name, req.Category, req.Date, req.Location, req.Link)

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	// Reload with the reporter joined for the response.
	created, err := s.repo.FindByIDWithReporter(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	s.indexAsync(created)

	res := eventDto.NewEventResponse(created)
	return &res, nil
}

func (s *eventService) ListApproved(ctx context.Context) ([]eventDto.EventResponse, error) {
	events, err := s.repo.FindApproved(ctx)
	if err != nil {
		return nil, err
	}
	return eventDto.NewEventResponses(events), nil
}

func (s *eventService) MyEvents(ctx context.Context, userID uuid.UUID) ([]eventDto.EventResponse, error) {
	events, err := s.repo.FindByReporter(ctx, userID)
	if err != nil {
		return nil, err
	}
	return eventDto.NewEventResponses(events), nil
}

func (s *eventService) UserEdit(ctx context.Context, userID, eventID uuid.UUID, req eventDto.UpdateEventRequest) (*eventDto.EventResponse, error) {
	event, err := s.repo.FindByIDWithReporter(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evento non trovato: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if event.ReporterID == nil || *event.ReporterID != userID {
		return nil, fmt.Errorf("non hai il permesso di modificare questo evento: %w", apperror.ErrForbidden)
	}

	if event.Status != entity.StatusPending {
		return nil, fmt.Errorf("puoi modificare solo eventi in attesa di approvazione: %w", apperror.ErrInvalidState)
	}

	ApplyEventFields(event, req.Name, req.Category, req.Date, req.Location, req.Link)

	if err := s.repo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.indexAsync(event)

	res := eventDto.NewEventResponse(event)
	return &res, nil
}

// indexAsync mirrors the event into the search index. Indexing is a secondary
// effect: failures are logged, never surfaced.
func (s *eventService) indexAsync(event *entity.Event) {
	if s.search == nil {
		return
	}
	go func(e entity.Event) {
		if err := s.search.IndexEvent(&e); err != nil {
			log.Printf("Failed to index event %s: %v", e.ID, err)
		}
	}(*event)
}
