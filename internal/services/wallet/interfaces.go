package wallet

import (
	"context"

	"medipay/internal/models"

	"github.com/shopspring/decimal"
)

// Service defines the main wallet service interface
type Service interface {
	// Wallet management
	CreateWallet(ctx context.Context, doctorID uint) (*models.Wallet, error)
	GetWallet(ctx context.Context, doctorID uint) (*models.Wallet, error)

	// Balance operations. GetBalance reconciles before returning, so
	// its result is always the canonical value.
	GetBalance(ctx context.Context, doctorID uint) (decimal.Decimal, error)
	Reconcile(ctx context.Context, doctorID uint) (decimal.Decimal, error)

	// Balance mutation primitives
	Credit(ctx context.Context, doctorID uint, amount decimal.Decimal) error
	TryDebit(ctx context.Context, doctorID uint, amount decimal.Decimal) error
	Refund(ctx context.Context, doctorID uint, amount decimal.Decimal) error
}
