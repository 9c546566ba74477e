package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"attendance-service/internal/database"
	"attendance-service/internal/domain"
	"attendance-service/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), database.Config{MaxOpenConns: 1})
	require.NoError(t, err, "failed to open database")
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:   username,
		Name:       "User " + username,
		Department: "Engineering",
		Email:      username + "@example.com",
		Role:       domain.RoleUser,
		Status:     domain.StatusOff,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	return u
}
