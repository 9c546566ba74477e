package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance-service/internal/timeutil"
)

// Role distinguishes tracked staff from administrators
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	DefaultShiftStart = "09:00:00"
	DefaultShiftEnd   = "18:00:00"
)

// BaseModel contains common fields for all domain entities
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate assigns an ID when the caller did not
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// User is a tracked staff member and holds the current attendance status
type User struct {
	BaseModel
	Username             string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username" json:"username"`
	Name                 string     `gorm:"type:varchar(255);not null" json:"name"`
	Department           string     `gorm:"type:varchar(255)" json:"department"`
	Email                string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Role                 Role       `gorm:"type:varchar(20);not null;default:'user';index:idx_users_role" json:"role"`
	Status               Status     `gorm:"type:varchar(20);not null;default:'off';index:idx_users_status" json:"status"`
	LastStatusChange     *time.Time `gorm:"type:timestamp" json:"lastStatusChange"`
	ShiftStartTime       string     `gorm:"type:varchar(8);not null;default:'09:00:00'" json:"shiftStartTime"`
	ShiftEndTime         string     `gorm:"type:varchar(8);not null;default:'18:00:00'" json:"shiftEndTime"`
	ShiftDurationSeconds int        `gorm:"not null;default:32400" json:"shiftDurationSeconds"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeSave keeps the cached shift duration in step with the shift bounds
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.ShiftStartTime == "" {
		u.ShiftStartTime = DefaultShiftStart
	}
	if u.ShiftEndTime == "" {
		u.ShiftEndTime = DefaultShiftEnd
	}
	u.ShiftDurationSeconds = timeutil.ShiftDurationSeconds(u.ShiftStartTime, u.ShiftEndTime)
	return nil
}

// UserPatch carries a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name           *string
	Department     *string
	Email          *string
	Status         *Status
	ShiftStartTime *string
	ShiftEndTime   *string
}

// Apply sets the patched fields on u and returns the columns that changed.
// A status change never moves last_status_change backwards. The shift duration is
// recomputed here because column updates skip BeforeSave.
func (p UserPatch) Apply(u *User, now time.Time) map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil && *p.Name != u.Name {
		u.Name = *p.Name
		cols["name"] = u.Name
	}
	if p.Department != nil && *p.Department != u.Department {
		u.Department = *p.Department
		cols["department"] = u.Department
	}
	if p.Email != nil && *p.Email != u.Email {
		u.Email = *p.Email
		cols["email"] = u.Email
	}
	if p.Status != nil && *p.Status != u.Status {
		changedAt := now
		if u.LastStatusChange != nil && u.LastStatusChange.After(now) {
			changedAt = *u.LastStatusChange
		}
		u.Status = *p.Status
		u.LastStatusChange = &changedAt
		cols["status"] = u.Status
		cols["last_status_change"] = changedAt
	}
	if p.ShiftStartTime != nil || p.ShiftEndTime != nil {
		if p.ShiftStartTime != nil {
			u.ShiftStartTime = *p.ShiftStartTime
		}
		if p.ShiftEndTime != nil {
			u.ShiftEndTime = *p.ShiftEndTime
		}
		u.ShiftDurationSeconds = timeutil.ShiftDurationSeconds(u.ShiftStartTime, u.ShiftEndTime)
		cols["shift_start_time"] = u.ShiftStartTime
		cols["shift_end_time"] = u.ShiftEndTime
		cols["shift_duration_seconds"] = u.ShiftDurationSeconds
	}
	if len(cols) > 0 {
		u.UpdatedAt = now
		cols["updated_at"] = now
	}
	return cols
}
