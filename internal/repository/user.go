// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"gymdesk/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for login identities.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	AddRole(ctx context.Context, user *models.User, roleName string) error
	EnsureRole(ctx context.Context, name string) (*models.Role, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found.")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail looks up an identity case-insensitively. A missing identity
// is (nil, nil), not an error, so callers control the failure shape.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewFieldValidationError("Registration failed.",
				map[string]string{"email": "Email is already taken."})
		}
		return models.NewInternalError(err)
	}
	return nil
}

// AddRole assigns the named role to the user, creating the role record
// if it does not exist yet.
func (r *userRepository) AddRole(ctx context.Context, user *models.User, roleName string) error {
	role, err := r.EnsureRole(ctx, roleName)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(user).Association("Roles").Append(role); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) EnsureRole(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).
		Where(models.Role{Name: name}).
		FirstOrCreate(&role).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &role, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
