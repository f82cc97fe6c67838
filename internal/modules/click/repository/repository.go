package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"scopri.app/eventilocali/internal/entity"
)

// ClickedEvent pairs an event with how many distinct users clicked it.
type ClickedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	ClickCount    int64     `json:"click_count"`
	DistinctUsers int64     `json:"distinct_users"`
}

type ClickRepository interface {
	// Record inserts the (event, user) pair and bumps the event counter in one
	// transaction. The unique index on the pair makes a repeat click a no-op:
	// the counter only moves when the insert lands.
	Record(ctx context.Context, eventID, userID uuid.UUID) (inserted bool, err error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.EventClick, error)
	CountDistinctUsers(ctx context.Context, eventID uuid.UUID) (int64, error)
	TotalClicks(ctx context.Context) (int64, error)
	MostClicked(ctx context.Context, limit int) ([]ClickedEvent, error)
	ClickedPage(ctx context.Context, orderBy string, offset, limit int) ([]ClickedEvent, int64, error)
}

type clickRepository struct {
	db *gorm.DB
}

func NewClickRepository(db *gorm.DB) ClickRepository {
	return &clickRepository{db: db}
}

func (r *clickRepository) Record(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		click := entity.EventClick{
			EventID: eventID,
			UserID:  userID,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&click)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		inserted = true
		return tx.Model(&entity.Event{}).
			Where("id = ?", eventID).
			Update("click_count", gorm.Expr("click_count + ?", 1)).Error
	})
	return inserted, err
}

func (r *clickRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.EventClick, error) {
	var clicks []entity.EventClick
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("clicked_at desc").
		Find(&clicks).Error
	return clicks, err
}

func (r *clickRepository) CountDistinctUsers(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EventClick{}).
		Where("event_id = ?", eventID).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *clickRepository) TotalClicks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.EventClick{}).Count(&count).Error
	return count, err
}

func (r *clickRepository) MostClicked(ctx context.Context, limit int) ([]ClickedEvent, error) {
	var results []ClickedEvent
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Select("events.id as event_id, events.name, events.category, events.click_count, count(distinct event_clicks.user_id) as distinct_users").
		Joins("JOIN event_clicks ON event_clicks.event_id = events.id").
		Group("events.id, events.name, events.category, events.click_count").
		Order("events.click_count desc").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *clickRepository) ClickedPage(ctx context.Context, orderBy string, offset, limit int) ([]ClickedEvent, int64, error) {
	base := r.db.WithContext(ctx).Model(&entity.Event{}).
		Where("click_count > 0")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "events.click_count desc"
	if orderBy == "name" {
		order = "events.name asc"
	}

	var results []ClickedEvent
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Select("events.id as event_id, events.name, events.category, events.click_count, count(distinct event_clicks.user_id) as distinct_users").
		Joins("LEFT JOIN event_clicks ON event_clicks.event_id = events.id").
		Where("events.click_count > 0").
		Group("events.id, events.name, events.category, events.click_count").
		Order(order).
		Offset(offset).
		Limit(limit).
		Scan(&results).Error
	return results, total, err
}
