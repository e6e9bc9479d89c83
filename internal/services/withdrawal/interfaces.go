package withdrawal

import (
	"context"

	"medipay/internal/models"

	"github.com/shopspring/decimal"
)

// Service drives the withdrawal request lifecycle:
//
//	pending -> approved -> credited
//	pending -> declined
//	approved -> declined
//
// Creation reserves the amount by debiting the wallet; declining
// refunds the reservation; approving and crediting never touch the
// balance. credited and declined are terminal.
type Service interface {
	Create(ctx context.Context, doctorID uint, amount decimal.Decimal) (*models.WithdrawalRequest, error)
	Transition(ctx context.Context, id uint, target string, reason string) (*models.WithdrawalRequest, error)
	Get(ctx context.Context, id uint) (*models.WithdrawalRequest, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]models.WithdrawalRequest, error)
	ListAll(ctx context.Context) ([]models.WithdrawalRequest, error)
}
