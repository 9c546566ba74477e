package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"attendance-service/internal/database"
	"attendance-service/internal/domain"
)

// setupTestDB opens an in-memory SQLite ledger on a single connection
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), database.Config{MaxOpenConns: 1})
	require.NoError(t, err, "failed to open database")
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:   username,
		Name:       "User " + username,
		Department: "Engineering",
		Email:      username + "@example.com",
		Role:       role,
		Status:     domain.StatusOff,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}
