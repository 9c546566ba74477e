package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OvertimeRecord holds the overtime a user accumulated on one calendar date
type OvertimeRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_overtimes_user_date,priority:1" json:"userId"`
	Date            datatypes.Date `gorm:"column:ot_date;not null;uniqueIndex:idx_user_overtimes_user_date,priority:2" json:"date"`
	OvertimeSeconds int64          `gorm:"not null;default:0" json:"overtimeSeconds"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	User            *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for OvertimeRecord
func (OvertimeRecord) TableName() string {
	return "user_overtimes"
}

// BeforeCreate assigns an ID when the caller did not
func (o *OvertimeRecord) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// CalendarDate converts the date part of t into the stored column value
func CalendarDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
