package repositories

import (
	"context"
	"fmt"

	"medipay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	result := r.db.Create(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetByDoctorID(doctorID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("doctor_id = ?", doctorID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Credit(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("doctor_id = ?", doctorID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

// TryDebit decrements the balance only when it covers the amount. The
// guard predicate and the decrement run as one UPDATE, so two racing
// debits that would jointly overdraw the wallet can never both win.
func (r *walletRepository) TryDebit(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("doctor_id = ? AND balance >= ?", doctorID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing wallet from a guarded refusal.
		if _, err := r.GetByDoctorID(doctorID); err != nil {
			return err
		}
		return ErrInsufficientFunds
	}
	return nil
}

func (r *walletRepository) Refund(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("doctor_id = ?", doctorID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to refund wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) SetBalance(ctx context.Context, doctorID uint, balance decimal.Decimal) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("doctor_id = ? AND balance <> ?", doctorID, balance).
		Update("balance", balance)
	if result.Error != nil {
		return false, fmt.Errorf("failed to set wallet balance: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *walletRepository) SumCompletedEarnings(ctx context.Context, doctorID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("doctor_id = ? AND status = ?", doctorID, models.ConsultationStatusCompleted).
		Select("COALESCE(SUM(base_fee), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed earnings: %w", err)
	}
	return total, nil
}

func (r *walletRepository) SumCommittedWithdrawals(ctx context.Context, doctorID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.WithdrawalRequest{}).
		Where("doctor_id = ? AND status IN ?", doctorID, []string{
			models.WithdrawalStatusPending,
			models.WithdrawalStatusApproved,
			models.WithdrawalStatusCredited,
		}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum committed withdrawals: %w", err)
	}
	return total, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &walletRepository{db: tx}
		return fn(txRepo)
	})
}
