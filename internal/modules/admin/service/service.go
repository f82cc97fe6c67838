package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"scopri.app/eventilocali/internal/entity"
	adminDto "scopri.app/eventilocali/internal/modules/admin/dto"
	clickRepo "scopri.app/eventilocali/internal/modules/click/repository"
	eventDto "scopri.app/eventilocali/internal/modules/event/dto"
	eventRepo "scopri.app/eventilocali/internal/modules/event/repository"
	searchService "scopri.app/eventilocali/internal/modules/search/service"
	userDto "scopri.app/eventilocali/internal/modules/user/dto"
	userRepo "scopri.app/eventilocali/internal/modules/user/repository"
	"scopri.app/eventilocali/pkg/apperror"
	commonDto "scopri.app/eventilocali/pkg/dto"
)

const (
	defaultPageSize   = 20
	recentEventsLimit = 10
	topReportersLimit = 5
	mostClickedLimit  = 10
	monthsOfHistory   = 6
)

type AdminService interface {
	DashboardStats(ctx context.Context) (*adminDto.DashboardStats, error)
	RecentEvents(ctx context.Context) ([]eventDto.EventResponse, error)
	Users(ctx context.Context, page, limit int) ([]adminDto.AdminUserResponse, *commonDto.PaginationMeta, error)
	Events(ctx context.Context, query adminDto.AdminEventsQuery) ([]eventDto.EventResponse, *commonDto.PaginationMeta, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*userDto.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
	EventClicks(ctx context.Context, eventID uuid.UUID) (*adminDto.EventClicksResponse, error)
	ClickStats(ctx context.Context, query adminDto.ClickStatsQuery) ([]clickRepo.ClickedEvent, *commonDto.PaginationMeta, error)
}

type adminService struct {
	users  userRepo.UserRepository
	events eventRepo.EventRepository
	clicks clickRepo.ClickRepository
	search searchService.EventSearchService
}

func NewAdminService(
	users userRepo.UserRepository,
	events eventRepo.EventRepository,
	clicks clickRepo.ClickRepository,
	search searchService.EventSearchService,
) AdminService {
	return &adminService{
		users:  users,
		events: events,
		clicks: clicks,
		search: search,
	}
}

func (s *adminService) DashboardStats(ctx context.Context) (*adminDto.DashboardStats, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	historyStart := monthStart.AddDate(0, -(monthsOfHistory - 1), 0)

	stats := &adminDto.DashboardStats{}

	var err error
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.NewUsersThisMonth, err = s.users.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, err
	}
	if stats.TotalEvents, err = s.events.Count(ctx); err != nil {
		return nil, err
	}
	if stats.NewEventsThisMonth, err = s.events.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, err
	}
	if stats.PendingEvents, err = s.events.CountByStatus(ctx, entity.StatusPending); err != nil {
		return nil, err
	}
	if stats.ApprovedEvents, err = s.events.CountByStatus(ctx, entity.StatusApproved); err != nil {
		return nil, err
	}
	if stats.RejectedEvents, err = s.events.CountByStatus(ctx, entity.StatusRejected); err != nil {
		return nil, err
	}
	if stats.EventsByCategory, err = s.events.CountByCategory(ctx); err != nil {
		return nil, err
	}
	if stats.EventsByMonth, err = s.events.CountByMonth(ctx, historyStart); err != nil {
		return nil, err
	}
	if stats.MostActiveReporters, err = s.events.MostActiveReporters(ctx, topReportersLimit); err != nil {
		return nil, err
	}
	if stats.TotalClicks, err = s.clicks.TotalClicks(ctx); err != nil {
		return nil, err
	}
	if stats.MostClickedEvents, err = s.clicks.MostClicked(ctx, mostClickedLimit); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *adminService) RecentEvents(ctx context.Context) ([]eventDto.EventResponse, error) {
	events, err := s.events.FindRecent(ctx, recentEventsLimit)
	if err != nil {
		return nil, err
	}
	return eventDto.NewEventResponses(events), nil
}

func (s *adminService) Users(ctx context.Context, page, limit int) ([]adminDto.AdminUserResponse, *commonDto.PaginationMeta, error) {
	page, limit = normalizePage(page, limit)

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, nil, err
	}

	users, err := s.users.FindPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	out := make([]adminDto.AdminUserResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		eventCount, err := s.events.CountByReporter(ctx, u.ID)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, adminDto.AdminUserResponse{
			ID:         u.ID,
			Username:   u.Username,
			Email:      u.Email,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Role:       u.Role,
			Points:     u.Points,
			EventCount: eventCount,
			CreatedAt:  u.CreatedAt,
		})
	}

	meta := commonDto.NewPaginationMeta(page, limit, total)
	return out, &meta, nil
}

func (s *adminService) Events(ctx context.Context, query adminDto.AdminEventsQuery) ([]eventDto.EventResponse, *commonDto.PaginationMeta, error) {
	page, limit := normalizePage(query.Page, query.Limit)
	offset := (page - 1) * limit

	if query.Search != "" && s.search != nil {
		return s.searchEvents(ctx, query, page, limit, offset)
	}

	events, total, err := s.events.FindPage(ctx, eventRepo.EventFilter{
		Status:   query.Status,
		Category: query.Category,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, err
	}

	meta := commonDto.NewPaginationMeta(page, limit, total)
	return eventDto.NewEventResponses(events), &meta, nil
}

// searchEvents resolves the free-text query through Meilisearch, then loads
// the matching rows and restores the relevance order the index returned.
func (s *adminService) searchEvents(ctx context.Context, query adminDto.AdminEventsQuery, page, limit, offset int) ([]eventDto.EventResponse, *commonDto.PaginationMeta, error) {
	ids, total, err := s.search.SearchEvents(query.Search, query.Status, query.Category, offset, limit)
	if err != nil {
		return nil, nil, err
	}

	events, err := s.events.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[uuid.UUID]*entity.Event, len(events))
	for i := range events {
		byID[events[i].ID] = &events[i]
	}

	ordered := make([]eventDto.EventResponse, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, eventDto.NewEventResponse(e))
		}
	}

	meta := commonDto.NewPaginationMeta(page, limit, total)
	return ordered, &meta, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*userDto.UserResponse, error) {
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("ruolo non valido: %w", apperror.ErrBadRequest)
	}

	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("utente non trovato: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	res := userDto.NewUserResponse(user, true)
	return &res, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return fmt.Errorf("non puoi eliminare il tuo account: %w", apperror.ErrBadRequest)
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("utente non trovato: %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *adminService) EventClicks(ctx context.Context, eventID uuid.UUID) (*adminDto.EventClicksResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evento non trovato: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	clicks, err := s.clicks.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	distinct, err := s.clicks.CountDistinctUsers(ctx, eventID)
	if err != nil {
		return nil, err
	}

	entries := make([]adminDto.ClickEntry, 0, len(clicks))
	for i := range clicks {
		entry := adminDto.ClickEntry{ClickedAt: clicks[i].ClickedAt}
		if clicks[i].User != nil {
			entry.Username = clicks[i].User.Username
			entry.FirstName = clicks[i].User.FirstName
			entry.LastName = clicks[i].User.LastName
		}
		entries = append(entries, entry)
	}

	return &adminDto.EventClicksResponse{
		EventID:       event.ID,
		EventName:     event.Name,
		ClickCount:    event.ClickCount,
		DistinctUsers: distinct,
		Clicks:        entries,
	}, nil
}

func (s *adminService) ClickStats(ctx context.Context, query adminDto.ClickStatsQuery) ([]clickRepo.ClickedEvent, *commonDto.PaginationMeta, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	orderBy := "clickCount"
	if query.SortBy == "name" {
		orderBy = "name"
	}

	results, total, err := s.clicks.ClickedPage(ctx, orderBy, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	meta := commonDto.NewPaginationMeta(page, limit, total)
	return results, &meta, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	return page, limit
}
