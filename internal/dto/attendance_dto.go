package dto

import "github.com/google/uuid"

// RecordStatusRequest reports a status transition for a user
type RecordStatusRequest struct {
	Status                string `json:"status" binding:"required"`
	ActiveDurationSeconds *int64 `json:"activeDurationSeconds"`
}

// RecordStatusResponse identifies the appended event
type RecordStatusResponse struct {
	EventID uuid.UUID `json:"eventId"`
}

// OvertimeResponse is a user's overtime total over a range or all time
type OvertimeResponse struct {
	UserID          uuid.UUID `json:"userId"`
	OvertimeSeconds int64     `json:"overtimeSeconds"`
	Readable        string    `json:"readable"`
}
