package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AnonymousReporter is the display name used when an event has no linked reporter.
const AnonymousReporter = "Anonimo"

type Event struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string       `gorm:"size:255;not null" json:"name"`
	Category   string       `gorm:"size:100;not null;index" json:"category"`
	Date       time.Time    `gorm:"not null" json:"date"`
	Location   string       `gorm:"size:255;not null" json:"location"`
	Link       *string      `gorm:"type:text" json:"link,omitempty"`
	Status     string       `gorm:"size:20;not null;default:pending;index" json:"status"`
	ReporterID *uuid.UUID   `gorm:"type:uuid;index" json:"reporter_id,omitempty"`
	Reporter   *User        `gorm:"foreignKey:ReporterID;constraint:OnDelete:SET NULL" json:"reporter,omitempty"`
	ClickCount int          `gorm:"not null;default:0" json:"click_count"`
	Clicks     []EventClick `gorm:"foreignKey:EventID" json:"-"`
	CreatedAt  time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}

// ReporterName returns the display name of the reporter, falling back to the
// anonymous marker when the event has no linked user.
func (e *Event) ReporterName() string {
	if e.Reporter != nil {
		return e.Reporter.Username
	}
	return AnonymousReporter
}

// EventClick is one attributed click on an event. The composite unique index
// makes the first-click-per-user rule a database constraint: concurrent clicks
// by the same user collapse into a single row.
type EventClick struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_clicks_user,priority:1" json:"event_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_clicks_user,priority:2" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ClickedAt time.Time `gorm:"autoCreateTime" json:"clicked_at"`
}

func (EventClick) TableName() string {
	return "event_clicks"
}
