package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest provisions a tracked user
type CreateUserRequest struct {
	Username       string `json:"username" binding:"required,max=100"`
	Name           string `json:"name" binding:"required,max=255"`
	Department     string `json:"department" binding:"max=255"`
	Email          string `json:"email" binding:"required,email,max=255"`
	ShiftStartTime string `json:"shiftStartTime"`
	ShiftEndTime   string `json:"shiftEndTime"`
}

// UpdateUserRequest changes only the fields that are set
type UpdateUserRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	Department     *string `json:"department" binding:"omitempty,max=255"`
	Email          *string `json:"email" binding:"omitempty,email,max=255"`
	Status         *string `json:"status"`
	ShiftStartTime *string `json:"shiftStartTime"`
	ShiftEndTime   *string `json:"shiftEndTime"`
}

// UserResponse is the admin view of a user
type UserResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Username             string     `json:"username"`
	Name                 string     `json:"name"`
	Department           string     `json:"department"`
	Email                string     `json:"email"`
	Role                 string     `json:"role"`
	Status               string     `json:"status"`
	LastStatusChange     *time.Time `json:"lastStatusChange"`
	ShiftStartTime       string     `json:"shiftStartTime"`
	ShiftEndTime         string     `json:"shiftEndTime"`
	ShiftDurationSeconds int        `json:"shiftDurationSeconds"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// HistoryEventResponse is one entry of a user's activity history
type HistoryEventResponse struct {
	ID                    uuid.UUID `json:"id"`
	EventType             string    `json:"eventType"`
	OccurredAt            time.Time `json:"occurredAt"`
	ActiveDurationSeconds *int64    `json:"activeDurationSeconds"`
	Notified              bool      `json:"notified"`
}
