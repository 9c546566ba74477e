package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"attendance-service/internal/domain"
	"attendance-service/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]*domain.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListTracked(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, id, patch, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Status]int64), args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) RecordTransition(ctx context.Context, userID uuid.UUID, status domain.Status, activeDuration *int64, at time.Time) (uuid.UUID, error) {
	args := m.Called(ctx, userID, status, activeDuration, at)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockEventRepository) RecordAbsence(ctx context.Context, userID uuid.UUID, from, to, at time.Time) (uuid.UUID, error) {
	args := m.Called(ctx, userID, from, to, at)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockEventRepository) ListUnnotified(ctx context.Context) ([]domain.UnnotifiedEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnnotifiedEvent), args.Error(1)
}

func (m *MockEventRepository) MarkNotified(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventRepository) SumDurations(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (int64, error) {
	args := m.Called(ctx, userID, types, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) HasEventBetween(ctx context.Context, userID uuid.UUID, types []domain.Status, from, to time.Time) (bool, error) {
	args := m.Called(ctx, userID, types, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) History(ctx context.Context, userID uuid.UUID, from, to *time.Time, limit int) ([]*domain.ActivityEvent, error) {
	args := m.Called(ctx, userID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ActivityEvent), args.Error(1)
}

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordStatus(ctx context.Context, userID uuid.UUID, status string, activeDuration *int64) (uuid.UUID, error) {
	args := m.Called(ctx, userID, status, activeDuration)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockLedgerService) ListUnnotified(ctx context.Context) ([]domain.UnnotifiedEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UnnotifiedEvent), args.Error(1)
}

func (m *MockLedgerService) MarkNotified(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// MockMailClient is a mock implementation of MailClient
type MockMailClient struct {
	mock.Mock
}

func (m *MockMailClient) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMailClient) Send(ctx context.Context, to []string, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockLocker is a mock implementation of Locker
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	args := m.Called(ctx, name, ttl)
	return func() {}, args.Bool(0), args.Error(1)
}

// anyTypes matches the "any event type" query
var anyTypes = mock.MatchedBy(func(types []domain.Status) bool { return len(types) == 0 })
