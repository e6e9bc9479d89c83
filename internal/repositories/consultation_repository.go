package repositories

import (
	"context"
	"fmt"
	"time"

	"medipay/internal/models"

	"gorm.io/gorm"
)

// ConsultationRepository stores consultation records. A consultation's
// fee split is written once at creation and never updated; only the
// lifecycle status moves.
type ConsultationRepository interface {
	Create(ctx context.Context, c *models.Consultation) error
	GetByID(ctx context.Context, id uint) (*models.Consultation, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]models.Consultation, error)

	// MarkCompleted flips a consultation to completed only when it is
	// not already in a terminal state. Returns false when the guard
	// refused, so a retried completion can never double-credit.
	MarkCompleted(ctx context.Context, id uint) (bool, error)
}

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, c *models.Consultation) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

func (r *consultationRepository) GetByID(ctx context.Context, id uint) (*models.Consultation, error) {
	var c models.Consultation
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return &c, nil
}

func (r *consultationRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]models.Consultation, error) {
	var cs []models.Consultation
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return cs, nil
}

func (r *consultationRepository) MarkCompleted(ctx context.Context, id uint) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("id = ? AND status IN ?", id, []string{
			models.ConsultationStatusRinging,
			models.ConsultationStatusAccepted,
		}).
		Updates(map[string]interface{}{
			"status":       models.ConsultationStatusCompleted,
			"completed_at": &now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark consultation completed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
