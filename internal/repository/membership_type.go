package repository

import (
	"context"
	"errors"

	"gymdesk/internal/models"

	"gorm.io/gorm"
)

// MembershipTypeRepository defines persistence operations for membership plans.
type MembershipTypeRepository interface {
	List(ctx context.Context) ([]models.MembershipType, error)
	GetByID(ctx context.Context, id uint) (*models.MembershipType, error)
	Create(ctx context.Context, mt *models.MembershipType) error
	Update(ctx context.Context, mt *models.MembershipType) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type membershipTypeRepository struct {
	db *gorm.DB
}

// NewMembershipTypeRepository returns a new MembershipTypeRepository implementation.
func NewMembershipTypeRepository(db *gorm.DB) MembershipTypeRepository {
	return &membershipTypeRepository{db: db}
}

func (r *membershipTypeRepository) List(ctx context.Context) ([]models.MembershipType, error) {
	var types []models.MembershipType
	if err := r.db.WithContext(ctx).Find(&types).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return types, nil
}

func (r *membershipTypeRepository) GetByID(ctx context.Context, id uint) (*models.MembershipType, error) {
	var mt models.MembershipType
	if err := r.db.WithContext(ctx).First(&mt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Membership type not found.")
		}
		return nil, models.NewInternalError(err)
	}
	return &mt, nil
}

func (r *membershipTypeRepository) Create(ctx context.Context, mt *models.MembershipType) error {
	if err := r.db.WithContext(ctx).Create(mt).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *membershipTypeRepository) Update(ctx context.Context, mt *models.MembershipType) error {
	result := r.db.WithContext(ctx).
		Model(&models.MembershipType{}).
		Where("id = ?", mt.ID).
		Updates(map[string]any{
			"name":               mt.Name,
			"cost":               mt.Cost,
			"duration_in_months": mt.DurationInMonths,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Membership type not found.")
	}
	return nil
}

// Delete removes a membership type and cascades to the members
// referencing it. The cascade runs in one transaction so a failure
// leaves both tables untouched.
func (r *membershipTypeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.MembershipType{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("membership_type_id = ?", id).Delete(&models.Member{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Membership type not found.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *membershipTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MembershipType{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
