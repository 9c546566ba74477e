package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"shift_start", "active", "inactive", "break_start", "break_end", "absent", " active "} {
		st, err := ParseStatus(valid)
		require.NoError(t, err, valid)
		assert.True(t, st.IsTransition())
	}

	for _, invalid := range []string{"", "off", "sleeping", "ACTIVE", "break"} {
		_, err := ParseStatus(invalid)
		assert.ErrorIs(t, err, ErrInvalidStatus, invalid)
	}
}

func TestStatus_IsAlertWorthy(t *testing.T) {
	assert.True(t, StatusInactive.IsAlertWorthy())
	assert.True(t, StatusAbsent.IsAlertWorthy())
	assert.False(t, StatusActive.IsAlertWorthy())
	assert.False(t, StatusBreakStart.IsAlertWorthy())
	assert.False(t, StatusOff.IsAlertWorthy())
}

func TestStatus_IsKnownUserStatus(t *testing.T) {
	assert.True(t, StatusOff.IsKnownUserStatus())
	assert.True(t, StatusBreakEnd.IsKnownUserStatus())
	assert.False(t, Status("vacation").IsKnownUserStatus())
}

func TestUser_BeforeSaveRecomputesShiftDuration(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	u := &User{Username: "alice", Name: "Alice", Email: "alice@example.com", Role: RoleUser, Status: StatusOff}
	require.NoError(t, db.Create(u).Error)
	assert.NotEqual(t, "", u.ID.String())
	assert.Equal(t, DefaultShiftStart, u.ShiftStartTime)
	assert.Equal(t, 9*3600, u.ShiftDurationSeconds)

	u.ShiftStartTime = "22:00:00"
	u.ShiftEndTime = "06:00:00"
	require.NoError(t, db.Save(u).Error)

	var stored User
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.Equal(t, 8*3600, stored.ShiftDurationSeconds)
}

func TestUserPatch_ApplyReturnsChangedColumns(t *testing.T) {
	earlier := mustTime(t, "2025-03-10T09:00:00Z")
	later := mustTime(t, "2025-03-10T10:00:00Z")
	u := &User{Name: "Alice", Status: StatusActive, LastStatusChange: &later, ShiftStartTime: "09:00:00", ShiftEndTime: "18:00:00"}

	same := "Alice"
	assert.Empty(t, UserPatch{Name: &same}.Apply(u, earlier))

	inactive := StatusInactive
	end := "17:00:00"
	cols := UserPatch{Status: &inactive, ShiftEndTime: &end}.Apply(u, earlier)

	assert.Equal(t, StatusInactive, cols["status"])
	// the stored change time is newer than now and is kept
	assert.Equal(t, later, cols["last_status_change"])
	assert.Equal(t, 8*3600, cols["shift_duration_seconds"])
	assert.Equal(t, "09:00:00", cols["shift_start_time"])
	assert.NotContains(t, cols, "name")
	assert.Equal(t, 8*3600, u.ShiftDurationSeconds)
}

func TestCalendarDate(t *testing.T) {
	d := CalendarDate(mustTime(t, "2025-03-10T23:30:00+05:00"))
	assert.Equal(t, "2025-03-10", timeOf(d).Format("2006-01-02"))
}
