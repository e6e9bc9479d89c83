package wallet

import (
	"context"

	"medipay/internal/models"

	"github.com/shopspring/decimal"
)

// MetricsCollector defines the interface for collecting wallet metrics
type MetricsCollector interface {
	// Mutation metrics
	RecordMutation(op string, amount decimal.Decimal)

	// Reconciliation metrics
	RecordDriftRepair(doctorID uint)

	// Error metrics
	RecordError(op, errType string)

	// Cache metrics
	RecordCacheHit(key string)
	RecordCacheMiss(key string)
}

// CacheOperator defines the caching operations needed for wallets
type CacheOperator interface {
	GetWallet(ctx context.Context, doctorID uint) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, doctorID uint) error
}
