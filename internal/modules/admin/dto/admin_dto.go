package dto

import (
	"time"

	"github.com/google/uuid"
	clickRepo "scopri.app/eventilocali/internal/modules/click/repository"
	eventRepo "scopri.app/eventilocali/internal/modules/event/repository"
)

// DashboardStats feeds the admin landing page in a single payload.
type DashboardStats struct {
	TotalUsers          int64                      `json:"total_users"`
	NewUsersThisMonth   int64                      `json:"new_users_this_month"`
	TotalEvents         int64                      `json:"total_events"`
	NewEventsThisMonth  int64                      `json:"new_events_this_month"`
	PendingEvents       int64                      `json:"pending_events"`
	ApprovedEvents      int64                      `json:"approved_events"`
	RejectedEvents      int64                      `json:"rejected_events"`
	EventsByCategory    []eventRepo.CategoryCount  `json:"events_by_category"`
	EventsByMonth       []eventRepo.MonthCount     `json:"events_by_month"`
	MostActiveReporters []eventRepo.ReporterCount  `json:"most_active_reporters"`
	TotalClicks         int64                      `json:"total_clicks"`
	MostClickedEvents   []clickRepo.ClickedEvent   `json:"most_clicked_events"`
}

type AdminUserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	Points     int       `json:"points"`
	EventCount int64     `json:"event_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminEventsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ClickEntry struct {
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	ClickedAt time.Time `json:"clicked_at"`
}

type EventClicksResponse struct {
	EventID       uuid.UUID    `json:"event_id"`
	EventName     string       `json:"event_name"`
	ClickCount    int          `json:"click_count"`
	DistinctUsers int64        `json:"distinct_users"`
	Clicks        []ClickEntry `json:"clicks"`
}

type ClickStatsQuery struct {
	SortBy string `form:"sort_by" binding:"omitempty,oneof=clickCount name"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
