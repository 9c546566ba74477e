package handler

import (
	"context"

	"github.com/google/uuid"

	"attendance-service/internal/domain"
	"attendance-service/internal/dto"
)

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	RecordStatusFunc   func(ctx context.Context, userID uuid.UUID, status string, activeDuration *int64) (uuid.UUID, error)
	ListUnnotifiedFunc func(ctx context.Context) ([]domain.UnnotifiedEvent, error)
	MarkNotifiedFunc   func(ctx context.Context, eventID uuid.UUID) error
}

func (m *MockLedgerService) RecordStatus(ctx context.Context, userID uuid.UUID, status string, activeDuration *int64) (uuid.UUID, error) {
	if m.RecordStatusFunc != nil {
		return m.RecordStatusFunc(ctx, userID, status, activeDuration)
	}
	return uuid.New(), nil
}

func (m *MockLedgerService) ListUnnotified(ctx context.Context) ([]domain.UnnotifiedEvent, error) {
	if m.ListUnnotifiedFunc != nil {
		return m.ListUnnotifiedFunc(ctx)
	}
	return []domain.UnnotifiedEvent{}, nil
}

func (m *MockLedgerService) MarkNotified(ctx context.Context, eventID uuid.UUID) error {
	if m.MarkNotifiedFunc != nil {
		return m.MarkNotifiedFunc(ctx, eventID)
	}
	return nil
}

// MockMetricsService is a mock implementation of MetricsService
type MockMetricsService struct {
	GetMetricsFunc     func(ctx context.Context, userID uuid.UUID, start, end string, includeRunning bool) (*domain.MetricsResult, error)
	SumOvertimeFunc    func(ctx context.Context, userID uuid.UUID, start, end string) (int64, error)
	DashboardStatsFunc func(ctx context.Context) (*domain.DashboardStats, error)
}

func (m *MockMetricsService) GetMetrics(ctx context.Context, userID uuid.UUID, start, end string, includeRunning bool) (*domain.MetricsResult, error) {
	if m.GetMetricsFunc != nil {
		return m.GetMetricsFunc(ctx, userID, start, end, includeRunning)
	}
	return &domain.MetricsResult{}, nil
}

func (m *MockMetricsService) SumOvertime(ctx context.Context, userID uuid.UUID, start, end string) (int64, error) {
	if m.SumOvertimeFunc != nil {
		return m.SumOvertimeFunc(ctx, userID, start, end)
	}
	return 0, nil
}

func (m *MockMetricsService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if m.DashboardStatsFunc != nil {
		return m.DashboardStatsFunc(ctx)
	}
	return &domain.DashboardStats{}, nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	CreateUserFunc func(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUserFunc    func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	ListUsersFunc  func(ctx context.Context, search, status string) ([]*dto.UserResponse, error)
	UpdateUserFunc func(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUserFunc func(ctx context.Context, userID uuid.UUID) error
	HistoryFunc    func(ctx context.Context, userID uuid.UUID, start, end string, limit float64) ([]*dto.HistoryEventResponse, error)
}

func (m *MockUserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	return &dto.UserResponse{}, nil
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return &dto.UserResponse{ID: userID}, nil
}

func (m *MockUserService) ListUsers(ctx context.Context, search, status string) ([]*dto.UserResponse, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, search, status)
	}
	return []*dto.UserResponse{}, nil
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, userID, req)
	}
	return &dto.UserResponse{ID: userID}, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserService) History(ctx context.Context, userID uuid.UUID, start, end string, limit float64) ([]*dto.HistoryEventResponse, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID, start, end, limit)
	}
	return []*dto.HistoryEventResponse{}, nil
}
