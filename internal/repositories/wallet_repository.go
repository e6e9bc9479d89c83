package repositories

import (
	"context"
	"errors"

	"medipay/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDuplicateWallet      = errors.New("wallet already exists")
	ErrWithdrawalNotFound   = errors.New("withdrawal request not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrConsultationNotFound = errors.New("consultation not found")
)

// WalletRepository defines the wallet-related database operations.
//
// Credit, TryDebit and Refund are the only operations permitted to
// change a persisted balance. Each is a single guarded UPDATE so that
// concurrent mutations of the same wallet serialize in the store; the
// debit guard makes overdrawing impossible even under racing callers.
type WalletRepository interface {
	// Core wallet operations
	Create(wallet *models.Wallet) error
	GetByDoctorID(doctorID uint) (*models.Wallet, error)

	// Balance mutation primitives
	Credit(ctx context.Context, doctorID uint, amount decimal.Decimal) error
	TryDebit(ctx context.Context, doctorID uint, amount decimal.Decimal) error
	Refund(ctx context.Context, doctorID uint, amount decimal.Decimal) error

	// SetBalance overwrites the cached balance when it differs from the
	// given canonical value. Returns true when a write happened.
	SetBalance(ctx context.Context, doctorID uint, balance decimal.Decimal) (bool, error)

	// Reconciliation source queries
	SumCompletedEarnings(ctx context.Context, doctorID uint) (decimal.Decimal, error)
	SumCommittedWithdrawals(ctx context.Context, doctorID uint) (decimal.Decimal, error)

	// Batch operations
	ExecuteInTransaction(fn func(WalletRepository) error) error
}
