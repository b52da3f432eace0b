package repository

import (
	"context"
	"errors"
	"strings"

	"gymdesk/internal/models"

	"gorm.io/gorm"
)

// MemberRepository defines persistence operations for gym members.
type MemberRepository interface {
	List(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository returns a new MemberRepository implementation.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) List(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.WithContext(ctx).Preload("MembershipType").Find(&members).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return members, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Preload("MembershipType").First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Member not found.")
		}
		return nil, models.NewInternalError(err)
	}
	return &member, nil
}

// GetByEmail resolves the soft link between an identity and its member
// profile. The match is exact email equality, case-insensitive; a
// missing profile is (nil, nil).
func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Preload("MembershipType").
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return models.NewInternalError(err)
	}
	// Reload so the response carries the membership type name.
	return r.db.WithContext(ctx).
		Preload("MembershipType").
		First(member, member.ID).Error
}

// Update writes the full record. A write that matches no row means the
// record vanished since it was read; that is reported as not found, not
// retried.
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	result := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]any{
			"first_name":         member.FirstName,
			"last_name":          member.LastName,
			"email":              member.Email,
			"phone_number":       member.PhoneNumber,
			"join_date":          member.JoinDate,
			"membership_type_id": member.MembershipTypeID,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Member not found.")
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Member not found.")
	}
	return nil
}

func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
