package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance-service/internal/domain"
)

// UserFilter narrows ListUsers; empty fields do not filter
type UserFilter struct {
	Search string
	Status domain.Status
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	ListTracked(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[domain.Status]int64, error)
}

// userRepositoryImpl is the GORM implementation of UserRepository
type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail returns any user holding either identifier
func (r *userRepositoryImpl) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns non-admin users ordered by name
func (r *userRepositoryImpl) List(ctx context.Context, filter UserFilter) ([]*domain.User, error) {
	q := r.db.WithContext(ctx).Where("role <> ?", domain.RoleAdmin)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("(username LIKE ? OR name LIKE ? OR department LIKE ? OR email LIKE ?)", like, like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var users []*domain.User
	if err := q.Order("name").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListTracked returns every user the absence reconciler considers
func (r *userRepositoryImpl) ListTracked(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.WithContext(ctx).
		Where("role <> ?", domain.RoleAdmin).
		Order("username").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies patch to the locked row and writes only the changed columns,
// so a concurrent status transition is never overwritten with a stale value
func (r *userRepositoryImpl) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&user).Error; err != nil {
			return err
		}

		cols := patch.Apply(&user, now)
		if len(cols) == 0 {
			return nil
		}
		return tx.Model(&domain.User{}).Where("id = ?", id).UpdateColumns(cols).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user together with its events and overtime records
func (r *userRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&domain.ActivityEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.OvertimeRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountByStatus counts non-admin users per current status
func (r *userRepositoryImpl) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	var rows []struct {
		Status domain.Status
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Select("status, COUNT(*) AS total").
		Where("role <> ?", domain.RoleAdmin).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
