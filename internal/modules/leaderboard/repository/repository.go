package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"scopri.app/eventilocali/internal/entity"
)

// ReporterStats aggregates one reporter's submission counts.
type ReporterStats struct {
	ReporterID    uuid.UUID `json:"reporter_id"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	EventCount    int64     `json:"event_count"`
	ApprovedCount int64     `json:"approved_count"`
	PendingCount  int64     `json:"pending_count"`
}

type LeaderboardRepository interface {
	// TopReporters groups events by reporter. Anonymous submissions carry no
	// reporter and never enter the ranking.
	TopReporters(ctx context.Context, limit int) ([]ReporterStats, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) TopReporters(ctx context.Context, limit int) ([]ReporterStats, error) {
	var results []ReporterStats
	err := r.db.WithContext(ctx).Model(&entity.Event{}).
		Select(`events.reporter_id,
			users.username,
			users.first_name,
			users.last_name,
			count(*) as event_count,
			count(*) filter (where events.status = ?) as approved_count,
			count(*) filter (where events.status = ?) as pending_count`,
			entity.StatusApproved, entity.StatusPending).
		Joins("JOIN users ON users.id = events.reporter_id").
		Where("events.reporter_id IS NOT NULL").
		Group("events.reporter_id, users.username, users.first_name, users.last_name").
		Order("event_count desc").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
