package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityEvent is an append-only record of a status transition.
// ActiveDurationSeconds is the length of the segment that ended at OccurredAt, when the client supplied one.
type ActivityEvent struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_events_user_time,priority:1" json:"userId"`
	EventType             Status    `gorm:"type:varchar(20);not null;index:idx_activity_events_type" json:"eventType"`
	OccurredAt            time.Time `gorm:"type:timestamp;not null;index:idx_activity_events_user_time,priority:2" json:"occurredAt"`
	ActiveDurationSeconds *int64    `json:"activeDurationSeconds"`
	Notified              bool      `gorm:"not null;default:false;index:idx_activity_events_notified" json:"notified"`
	User                  *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ActivityEvent
func (ActivityEvent) TableName() string {
	return "user_activity_events"
}

// BeforeCreate assigns an ID when the caller did not
func (e *ActivityEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// UnnotifiedEvent is an alert-worthy event joined with the identity of its user
type UnnotifiedEvent struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"userId"`
	EventType             Status    `json:"eventType"`
	OccurredAt            time.Time `json:"occurredAt"`
	ActiveDurationSeconds *int64    `json:"activeDurationSeconds"`
	Username              string    `json:"username"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Department            string    `json:"department"`
}
