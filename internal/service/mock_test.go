package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"attendance-service/internal/domain"
	"attendance-service/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc                func(ctx context.Context, user *domain.User) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsernameOrEmailFunc func(ctx context.Context, username, email string) (*domain.User, error)
	ListFunc                  func(ctx context.Context, filter repository.UserFilter) ([]*domain.User, error)
	ListTrackedFunc           func(ctx context.Context) ([]*domain.User, error)
	UpdateFunc                func(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error)
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	CountByStatusFunc         func(ctx context.Context) (map[domain.Status]int64, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	if m.FindByUsernameOrEmailFunc != nil {
		return m.FindByUsernameOrEmailFunc(ctx, username, email)
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockUserRepository) ListTracked(ctx context.Context) ([]*domain.User, error) {
	if m.ListTrackedFunc != nil {
		return m.ListTrackedFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch, now)
	}
	return nil, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[domain.Status]int64{}, nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	RecordTransitionFunc func(ctx context.Context, userID uuid.UUID, status domain.Status, activeDuration *int64, at time.Time) (uuid.UUID, error)
	RecordAbsenceFunc    func(ctx context.Context, userID uuid.UUID, from, to, at time.Time) (uuid.UUID, error)
	ListUnnotifiedFunc   func(ctx context.Context) ([]domain.UnnotifiedEvent, error)
	MarkNotifiedFunc     func(ctx context.Context, eventID uuid.UUID) error
	SumDurationsFunc     func(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (int64, error)
	HasEventBetweenFunc  func(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (bool, error)
	HistoryFunc          func(ctx context.Context, userID uuid.UUID, from, to *time.Time, limit int) ([]*domain.ActivityEvent, error)
}

func (m *MockEventRepository) RecordTransition(ctx context.Context, userID uuid.UUID, status domain.Status, activeDuration *int64, at time.Time) (uuid.UUID, error) {
	if m.RecordTransitionFunc != nil {
		return m.RecordTransitionFunc(ctx, userID, status, activeDuration, at)
	}
	return uuid.New(), nil
}

func (m *MockEventRepository) RecordAbsence(ctx context.Context, userID uuid.UUID, from, to, at time.Time) (uuid.UUID, error) {
	if m.RecordAbsenceFunc != nil {
		return m.RecordAbsenceFunc(ctx, userID, from, to, at)
	}
	return uuid.New(), nil
}

func (m *MockEventRepository) ListUnnotified(ctx context.Context) ([]domain.UnnotifiedEvent, error) {
	if m.ListUnnotifiedFunc != nil {
		return m.ListUnnotifiedFunc(ctx)
	}
	return nil, nil
}

func (m *MockEventRepository) MarkNotified(ctx context.Context, eventID uuid.UUID) error {
	if m.MarkNotifiedFunc != nil {
		return m.MarkNotifiedFunc(ctx, eventID)
	}
	return nil
}

func (m *MockEventRepository) SumDurations(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (int64, error) {
	if m.SumDurationsFunc != nil {
		return m.SumDurationsFunc(ctx, userID, types, from, to)
	}
	return 0, nil
}

func (m *MockEventRepository) HasEventBetween(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (bool, error) {
	if m.HasEventBetweenFunc != nil {
		return m.HasEventBetweenFunc(ctx, userID, types, from, to)
	}
	return false, nil
}

func (m *MockEventRepository) History(ctx context.Context, userID uuid.UUID, from, to *time.Time, limit int) ([]*domain.ActivityEvent, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID, from, to, limit)
	}
	return nil, nil
}

// MockOvertimeRepository is a mock implementation of OvertimeRepository
type MockOvertimeRepository struct {
	UpsertFunc     func(ctx context.Context, userID uuid.UUID, date time.Time, seconds int64) error
	SumByUserFunc  func(ctx context.Context, userID uuid.UUID, from, to *time.Time) (int64, error)
	SumForDateFunc func(ctx context.Context, date time.Time) (int64, error)
}

func (m *MockOvertimeRepository) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, seconds int64) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, date, seconds)
	}
	return nil
}

func (m *MockOvertimeRepository) SumByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) (int64, error) {
	if m.SumByUserFunc != nil {
		return m.SumByUserFunc(ctx, userID, from, to)
	}
	return 0, nil
}

func (m *MockOvertimeRepository) SumForDate(ctx context.Context, date time.Time) (int64, error) {
	if m.SumForDateFunc != nil {
		return m.SumForDateFunc(ctx, date)
	}
	return 0, nil
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
