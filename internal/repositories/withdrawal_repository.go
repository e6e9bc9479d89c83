package repositories

import (
	"context"

	"medipay/internal/models"
)

// WithdrawalRepository defines the withdrawal-request database operations.
type WithdrawalRepository interface {
	Create(ctx context.Context, req *models.WithdrawalRequest) error
	GetByID(ctx context.Context, id uint) (*models.WithdrawalRequest, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]models.WithdrawalRequest, error)
	ListAll(ctx context.Context) ([]models.WithdrawalRequest, error)

	// TransitionStatus moves a request to a new status only when its
	// current status is one of from. It is a single conditional UPDATE:
	// a request that lost the race to another transition is left
	// untouched and false is returned.
	TransitionStatus(ctx context.Context, id uint, from []string, to string, reason string) (bool, error)

	// ExecuteInTransaction runs fn with repositories bound to one
	// database transaction, so a status transition and its balance
	// effect commit or roll back together.
	ExecuteInTransaction(fn func(WithdrawalRepository, WalletRepository) error) error
}
