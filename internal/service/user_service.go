package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"attendance-service/internal/domain"
	"attendance-service/internal/dto"
	"attendance-service/internal/repository"
	"attendance-service/internal/response"
	"attendance-service/internal/timeutil"
)

const (
	historyDefaultLimit = 500
	historyMaxLimit     = 500
)

// UserService administers tracked users
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, search, status string) ([]*dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	History(ctx context.Context, userID uuid.UUID, start, end string, limit float64) ([]*dto.HistoryEventResponse, error)
}

type userServiceImpl struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
	logger    *zap.Logger
	opts      options
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, eventRepo repository.EventRepository, logger *zap.Logger, opts ...Option) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		logger:    logger,
		opts:      applyOptions(opts),
	}
}

// CreateUser provisions a user in the off state with default shift bounds when none are given
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || strings.TrimSpace(req.Name) == "" {
		return nil, response.NewValidationError("username, name and email are required", "")
	}

	shiftStart, shiftEnd, err := normalizeShift(req.ShiftStartTime, req.ShiftEndTime)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err == nil {
		return nil, response.NewAlreadyExistsError("Username or email already exists", "")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewStoreError("Failed to check for duplicates", err)
	}

	user := &domain.User{
		Username:       username,
		Name:           strings.TrimSpace(req.Name),
		Department:     strings.TrimSpace(req.Department),
		Email:          email,
		Role:           domain.RoleUser,
		Status:         domain.StatusOff,
		ShiftStartTime: shiftStart,
		ShiftEndTime:   shiftEnd,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, response.NewStoreError("Failed to create user", err)
	}

	s.logger.Info("user.created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("email", user.Email),
	)
	return toUserResponse(user), nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers returns non-admin users matching search and, when given, status
func (s *userServiceImpl) ListUsers(ctx context.Context, search, status string) ([]*dto.UserResponse, error) {
	filter := repository.UserFilter{Search: strings.TrimSpace(search)}
	if status = strings.TrimSpace(status); status != "" {
		st := domain.Status(status)
		if !st.IsKnownUserStatus() {
			return nil, response.NewAppError(response.ErrCodeInvalidStatus, "Invalid status", status)
		}
		filter.Status = st
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, response.NewStoreError("Failed to list users", err)
	}

	out := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out, nil
}

// UpdateUser applies the given fields; the shift duration is recomputed on save
func (s *userServiceImpl) UpdateUser(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var patch domain.UserPatch

	if v := trimmed(req.Name); v != "" {
		patch.Name = &v
	}
	if req.Department != nil {
		v := strings.TrimSpace(*req.Department)
		patch.Department = &v
	}
	if v := trimmed(req.Status); v != "" {
		st := domain.Status(v)
		if !st.IsKnownUserStatus() {
			return nil, response.NewAppError(response.ErrCodeInvalidStatus, "Invalid status", v)
		}
		patch.Status = &st
	}
	var err error
	if patch.ShiftStartTime, err = shiftBound(req.ShiftStartTime); err != nil {
		return nil, err
	}
	if patch.ShiftEndTime, err = shiftBound(req.ShiftEndTime); err != nil {
		return nil, err
	}
	if v := trimmed(req.Email); v != "" {
		existing, err := s.userRepo.FindByUsernameOrEmail(ctx, "", v)
		if err == nil && existing.ID != userID {
			return nil, response.NewAlreadyExistsError("Email already exists", "")
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewStoreError("Failed to check for duplicates", err)
		}
		patch.Email = &v
	}

	user, err := s.userRepo.Update(ctx, userID, patch, s.opts.now().UTC().Truncate(time.Second))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found", userID.String())
		}
		return nil, response.NewStoreError("Failed to update user", err)
	}

	s.logger.Info("user.updated", zap.String("user_id", user.ID.String()))
	return toUserResponse(user), nil
}

// DeleteUser removes the user with all of its events and overtime records
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("User not found", userID.String())
		}
		return response.NewStoreError("Failed to delete user", err)
	}

	s.logger.Info("user.deleted", zap.String("user_id", userID.String()))
	return nil
}

// History lists the user's events newest first. Dates filter only when both are given.
func (s *userServiceImpl) History(ctx context.Context, userID uuid.UUID, start, end string, limit float64) ([]*dto.HistoryEventResponse, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	var from, to *time.Time
	if start != "" && end != "" {
		rangeStart, _, err := timeutil.DayBounds(start, s.opts.loc)
		if err != nil {
			return nil, response.NewValidationError("Invalid start date, expected YYYY-MM-DD", start)
		}
		_, rangeEnd, err := timeutil.DayBounds(end, s.opts.loc)
		if err != nil {
			return nil, response.NewValidationError("Invalid end date, expected YYYY-MM-DD", end)
		}
		from, to = &rangeStart, &rangeEnd
	}

	events, err := s.eventRepo.History(ctx, userID, from, to, timeutil.CapLimit(limit, historyDefaultLimit, historyMaxLimit))
	if err != nil {
		return nil, response.NewStoreError("Failed to load history", err)
	}

	out := make([]*dto.HistoryEventResponse, len(events))
	for i, e := range events {
		out[i] = &dto.HistoryEventResponse{
			ID:                    e.ID,
			EventType:             string(e.EventType),
			OccurredAt:            e.OccurredAt,
			ActiveDurationSeconds: e.ActiveDurationSeconds,
			Notified:              e.Notified,
		}
	}
	return out, nil
}

func (s *userServiceImpl) findUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found", userID.String())
		}
		return nil, response.NewStoreError("Failed to load user", err)
	}
	return user, nil
}

// normalizeShift applies the default bounds and checks the HH:MM:SS format
func normalizeShift(start, end string) (string, string, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" {
		start = domain.DefaultShiftStart
	}
	if end == "" {
		end = domain.DefaultShiftEnd
	}
	for _, v := range []string{start, end} {
		if _, err := time.Parse(timeutil.ClockLayout, v); err != nil {
			return "", "", response.NewValidationError("Shift times must be HH:MM:SS", v)
		}
	}
	return start, end, nil
}

// shiftBound returns nil for an absent bound and rejects anything but HH:MM:SS
func shiftBound(p *string) (*string, error) {
	v := trimmed(p)
	if v == "" {
		return nil, nil
	}
	if _, err := time.Parse(timeutil.ClockLayout, v); err != nil {
		return nil, response.NewValidationError("Shift times must be HH:MM:SS", v)
	}
	return &v, nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func toUserResponse(u *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Name:                 u.Name,
		Department:           u.Department,
		Email:                u.Email,
		Role:                 string(u.Role),
		Status:               string(u.Status),
		LastStatusChange:     u.LastStatusChange,
		ShiftStartTime:       u.ShiftStartTime,
		ShiftEndTime:         u.ShiftEndTime,
		ShiftDurationSeconds: u.ShiftDurationSeconds,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
