package repository

import (
	"context"
	"errors"

	"gymdesk/internal/models"

	"gorm.io/gorm"
)

// TrainerRepository defines persistence operations for trainers.
type TrainerRepository interface {
	List(ctx context.Context) ([]models.Trainer, error)
	GetByID(ctx context.Context, id uint) (*models.Trainer, error)
	Create(ctx context.Context, trainer *models.Trainer) error
	Update(ctx context.Context, trainer *models.Trainer) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type trainerRepository struct {
	db *gorm.DB
}

// NewTrainerRepository returns a new TrainerRepository implementation.
func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

func (r *trainerRepository) List(ctx context.Context) ([]models.Trainer, error) {
	var trainers []models.Trainer
	if err := r.db.WithContext(ctx).Find(&trainers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return trainers, nil
}

func (r *trainerRepository) GetByID(ctx context.Context, id uint) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trainer not found.")
		}
		return nil, models.NewInternalError(err)
	}
	return &trainer, nil
}

func (r *trainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	if err := r.db.WithContext(ctx).Create(trainer).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *trainerRepository) Update(ctx context.Context, trainer *models.Trainer) error {
	result := r.db.WithContext(ctx).
		Model(&models.Trainer{}).
		Where("id = ?", trainer.ID).
		Updates(map[string]any{
			"first_name": trainer.FirstName,
			"last_name":  trainer.LastName,
			"specialty":  trainer.Specialty,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Trainer not found.")
	}
	return nil
}

func (r *trainerRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Trainer{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Trainer not found.")
	}
	return nil
}

func (r *trainerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Trainer{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
