package repositories

import (
	"context"
	"fmt"

	"medipay/internal/models"

	"gorm.io/gorm"
)

type withdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{
		db: db,
	}
}

func (r *withdrawalRepository) Create(ctx context.Context, req *models.WithdrawalRequest) error {
	result := r.db.WithContext(ctx).Create(req)
	if result.Error != nil {
		return fmt.Errorf("failed to create withdrawal request: %w", result.Error)
	}
	return nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id uint) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal request: %w", err)
	}
	return &req, nil
}

func (r *withdrawalRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]models.WithdrawalRequest, error) {
	var reqs []models.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	return reqs, nil
}

func (r *withdrawalRepository) ListAll(ctx context.Context) ([]models.WithdrawalRequest, error) {
	var reqs []models.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}
	return reqs, nil
}

func (r *withdrawalRepository) TransitionStatus(ctx context.Context, id uint, from []string, to string, reason string) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if reason != "" {
		updates["rejection_reason"] = reason
	}

	result := r.db.WithContext(ctx).
		Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to transition withdrawal request: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *withdrawalRepository) ExecuteInTransaction(fn func(WithdrawalRepository, WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&withdrawalRepository{db: tx}, &walletRepository{db: tx})
	})
}
