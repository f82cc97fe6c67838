package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"scopri.app/eventilocali/internal/authz"
	"scopri.app/eventilocali/internal/entity"
	eventDto "scopri.app/eventilocali/internal/modules/event/dto"
	eventRepo "scopri.app/eventilocali/internal/modules/event/repository"
	eventService "scopri.app/eventilocali/internal/modules/event/service"
	notifService "scopri.app/eventilocali/internal/modules/notification/service"
	reviewDto "scopri.app/eventilocali/internal/modules/review/dto"
	searchService "scopri.app/eventilocali/internal/modules/search/service"
	userRepo "scopri.app/eventilocali/internal/modules/user/repository"
	"scopri.app/eventilocali/pkg/apperror"
)

// ReviewService drives the moderation state machine. Each mutation checks the
// policy first, flips the event state, then runs the side effects in order:
// points, then notification. Side-effect failures never roll back the state
// change, they are logged and absorbed.
type ReviewService interface {
	ListPending(ctx context.Context) ([]eventDto.EventResponse, error)
	Approve(ctx context.Context, actorRole string, eventID uuid.UUID) (*eventDto.EventResponse, error)
	Reject(ctx context.Context, actorRole string, eventID uuid.UUID) (*eventDto.EventResponse, error)
	Modify(ctx context.Context, actorRole string, eventID uuid.UUID, req reviewDto.ModifyEventRequest) (*eventDto.EventResponse, error)
	Stats(ctx context.Context) (*reviewDto.ReviewStatsResponse, error)
}

type reviewService struct {
	events        eventRepo.EventRepository
	users         userRepo.UserRepository
	notifications notifService.NotificationService
	search        searchService.EventSearchService
}

func NewReviewService(
	events eventRepo.EventRepository,
	users userRepo.UserRepository,
	notifications notifService.NotificationService,
	search searchService.EventSearchService,
) ReviewService {
	return &reviewService{
		events:        events,
		users:         users,
		notifications: notifications,
		search:        search,
	}
}

func (s *reviewService) ListPending(ctx context.Context) ([]eventDto.EventResponse, error) {
	events, err := s.events.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return eventDto.NewEventResponses(events), nil
}

func (s *reviewService) Approve(ctx context.Context, actorRole string, eventID uuid.UUID) (*eventDto.EventResponse, error) {
	if !authz.Allow(actorRole, authz.ActionApproveEvent) {
		return nil, fmt.Errorf("accesso negato: ruolo non autorizzato: %w", apperror.ErrForbidden)
	}

	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	changed, err := s.events.TransitionStatus(ctx, eventID, entity.StatusPending, entity.StatusApproved)
	if err != nil {
		return nil, err
	}

	if changed {
		event.Status = entity.StatusApproved
		s.awardPoint(ctx, event)
		s.notifyReporter(ctx, event, entity.NotificationEventApproved)
		s.reindex(event)
	}

	res := eventDto.NewEventResponse(event)
	return &res, nil
}

func (s *reviewService) Reject(ctx context.Context, actorRole string, eventID uuid.UUID) (*eventDto.EventResponse, error) {
	if !authz.Allow(actorRole, authz.ActionRejectEvent) {
		return nil, fmt.Errorf("accesso negato: ruolo non autorizzato: %w", apperror.ErrForbidden)
	}

	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	changed, err := s.events.TransitionStatus(ctx, eventID, entity.StatusPending, entity.StatusRejected)
	if err != nil {
		return nil, err
	}

	if changed {
		event.Status = entity.StatusRejected
		s.notifyReporter(ctx, event, entity.NotificationEventRejected)
		s.reindex(event)
	}

	res := eventDto.NewEventResponse(event)
	return &res, nil
}

func (s *reviewService) Modify(ctx context.Context, actorRole string, eventID uuid.UUID, req reviewDto.ModifyEventRequest) (*eventDto.EventResponse, error) {
	if !authz.Allow(actorRole, authz.ActionModifyEvent) {
		return nil, fmt.Errorf("accesso negato: ruolo non autorizzato: %w", apperror.ErrForbidden)
	}

	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.Status != entity.StatusPending {
		return nil, fmt.Errorf("puoi modificare solo eventi in attesa di approvazione: %w", apperror.ErrInvalidState)
	}

	eventService.ApplyEventFields(event, req.Name, req.Category, req.Date, req.Location, req.Link)

	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}

	s.notifyReporter(ctx, event, entity.NotificationEventModified)
	s.reindex(event)

	res := eventDto.NewEventResponse(event)
	return &res, nil
}

func (s *reviewService) Stats(ctx context.Context) (*reviewDto.ReviewStatsResponse, error) {
	pending, err := s.events.CountByStatus(ctx, entity.StatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.events.CountByStatus(ctx, entity.StatusApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := s.events.CountByStatus(ctx, entity.StatusRejected)
	if err != nil {
		return nil, err
	}

	return &reviewDto.ReviewStatsResponse{
		Pending:  pending,
		Approved: approved,
		Rejected: rejected,
		Total:    pending + approved + rejected,
	}, nil
}

func (s *reviewService) findEvent(ctx context.Context, eventID uuid.UUID) (*entity.Event, error) {
	event, err := s.events.FindByIDWithReporter(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evento non trovato: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return event, nil
}

// awardPoint credits the reporter for an approved event. Anonymous events have
// no reporter; a deleted reporter just loses the point.
func (s *reviewService) awardPoint(ctx context.Context, event *entity.Event) {
	if event.ReporterID == nil {
		return
	}
	if err := s.users.IncrementPoints(ctx, *event.ReporterID, 1); err != nil {
		log.Printf("Failed to award point to user %s for event %s: %v", event.ReporterID, event.ID, err)
	}
}

func (s *reviewService) notifyReporter(ctx context.Context, event *entity.Event, notifType string) {
	if event.ReporterID == nil {
		return
	}
	title, message, ok := ModerationNotice(notifType, event.Name)
	if !ok {
		return
	}

	notification := &entity.Notification{
		UserID:    *event.ReporterID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		EventID:   event.ID,
		EventName: event.Name,
	}
	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		log.Printf("Failed to create %s notification for event %s: %v", notifType, event.ID, err)
	}
}

func (s *reviewService) reindex(event *entity.Event) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexEvent(event); err != nil {
		log.Printf("Failed to index event %s: %v", event.ID, err)
	}
}
