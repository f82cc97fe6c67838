package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"scopri.app/eventilocali/internal/entity"
)

// EventFilter narrows the admin event listing.
type EventFilter struct {
	Status   string
	Category string
	Offset   int
	Limit    int
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

type ReporterCount struct {
	ReporterID uuid.UUID `json:"reporter_id"`
	Username   string    `json:"username"`
	Count      int64     `json:"count"`
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindByIDWithReporter(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindApproved(ctx context.Context) ([]entity.Event, error)
	FindByReporter(ctx context.Context, reporterID uuid.UUID) ([]entity.Event, error)
	FindPending(ctx context.Context) ([]entity.Event, error)
	Save(ctx context.Context, event *entity.Event) error
	// TransitionStatus flips the event from one status to another only if it is
	// still in the expected source state; returns whether the row changed.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByReporter(ctx context.Context, reporterID uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	CountByMonth(ctx context.Context, since time.Time) ([]MonthCount, error)
	MostActiveReporters(ctx context.Context, limit int) ([]ReporterCount, error)
	FindRecent(ctx context.Context, limit int) ([]entity.Event, error)
	FindPage(ctx context.Context, filter EventFilter) ([]entity.Event, int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByIDWithReporter(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("id = ?", id).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindApproved(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("status = ?", entity.StatusApproved).
		Order("date asc").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByReporter(ctx context.Context, reporterID uuid.UUID) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("reporter_id = ?", reporterID).
		Order("date desc").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindPending(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("status = ?", entity.StatusPending).
		Order("created_at desc").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Save(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Event{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Event{}).Count(&count).Error
	return count, err
}

func (r *eventRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) CountByReporter(ctx context.Context, reporterID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Where("reporter_id = ?", reporterID).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var results []CategoryCount
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Select("category, count(*) as count").
		Group("category").
		Order("count desc").
		Scan(&results).Error
	return results, err
}

func (r *eventRepository) CountByMonth(ctx context.Context, since time.Time) ([]MonthCount, error) {
	var results []MonthCount
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Select("extract(year from created_at)::int as year, extract(month from created_at)::int as month, count(*) as count").
		Where("created_at >= ?", since).
		Group("year, month").
		Order("year asc, month asc").
		Scan(&results).Error
	return results, err
}

func (r *eventRepository) MostActiveReporters(ctx context.Context, limit int) ([]ReporterCount, error) {
	var results []ReporterCount
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Select("events.reporter_id, users.username, count(*) as count").
		Joins("JOIN users ON users.id = events.reporter_id").
		Where("events.reporter_id IS NOT NULL").
		Group("events.reporter_id, users.username").
		Order("count desc").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *eventRepository) FindRecent(ctx context.Context, limit int) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Order("created_at desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindPage(ctx context.Context, filter EventFilter) ([]entity.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Event{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []entity.Event
	err := query.
		Preload("Reporter").
		Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&events).Error
	return events, total, err
}

func (r *eventRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Event, error) {
	var events []entity.Event
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("id IN ?", ids).
		Find(&events).Error
	return events, err
}
