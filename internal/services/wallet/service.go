package wallet

import (
	"context"
	"errors"
	"fmt"

	apperrors "medipay/internal/errors"
	"medipay/internal/models"
	"medipay/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	repo    repositories.WalletRepository
	cache   CacheOperator
	logger  *zap.Logger
	metrics MetricsCollector
}

// NewService creates a new wallet service
func NewService(
	repo repositories.WalletRepository,
	cache CacheOperator,
	logger *zap.Logger,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *service) CreateWallet(ctx context.Context, doctorID uint) (*models.Wallet, error) {
	wallet := &models.Wallet{
		DoctorID: doctorID,
		Currency: DefaultCurrency,
	}

	if err := s.repo.Create(wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	s.cache.CacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) GetWallet(ctx context.Context, doctorID uint) (*models.Wallet, error) {
	// Try cache first
	if wallet, err := s.cache.GetWallet(ctx, doctorID); err == nil && wallet != nil {
		s.metrics.RecordCacheHit(walletKey(doctorID))
		return wallet, nil
	}
	s.metrics.RecordCacheMiss(walletKey(doctorID))

	// A cache miss is a fresh read: verify the cached projection against
	// the transaction history before handing it out.
	if _, err := s.Reconcile(ctx, doctorID); err != nil {
		return nil, err
	}

	wallet, err := s.repo.GetByDoctorID(doctorID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, fmt.Errorf("%w: wallet for doctor %d", apperrors.ErrNotFound, doctorID)
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	s.cache.CacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) GetBalance(ctx context.Context, doctorID uint) (decimal.Decimal, error) {
	if _, err := s.repo.GetByDoctorID(doctorID); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return decimal.Zero, fmt.Errorf("%w: wallet for doctor %d", apperrors.ErrNotFound, doctorID)
		}
		return decimal.Zero, fmt.Errorf("failed to get wallet: %w", err)
	}

	return s.Reconcile(ctx, doctorID)
}

// Reconcile recomputes the canonical balance from completed
// consultations minus withdrawals that still hold a reservation
// (pending, approved) or consumed one for good (credited). Declined
// withdrawals were refunded and do not count. The cached balance is
// overwritten only when it drifted, so the call is idempotent and safe
// to run concurrently with live mutations.
func (s *service) Reconcile(ctx context.Context, doctorID uint) (decimal.Decimal, error) {
	earned, err := s.repo.SumCompletedEarnings(ctx, doctorID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrReconcileFailed, err)
	}

	committed, err := s.repo.SumCommittedWithdrawals(ctx, doctorID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrReconcileFailed, err)
	}

	canonical := canonicalBalance(earned, committed)

	changed, err := s.repo.SetBalance(ctx, doctorID, canonical)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrReconcileFailed, err)
	}
	if changed {
		s.logger.Warn("wallet balance drift repaired",
			zap.Uint("doctor_id", doctorID),
			zap.String("canonical_balance", canonical.String()),
		)
		s.metrics.RecordDriftRepair(doctorID)
		s.cache.InvalidateWallet(ctx, doctorID)
	}

	return canonical, nil
}

func (s *service) Credit(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		s.metrics.RecordError(OpCredit, "invalid_amount")
		return fmt.Errorf("%w: credit amount must be positive, got %s", apperrors.ErrInvalidInput, amount)
	}

	if err := s.repo.Credit(ctx, doctorID, amount); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return fmt.Errorf("%w: wallet for doctor %d", apperrors.ErrNotFound, doctorID)
		}
		s.metrics.RecordError(OpCredit, "store")
		return err
	}

	s.cache.InvalidateWallet(ctx, doctorID)
	s.metrics.RecordMutation(OpCredit, amount)
	return nil
}

func (s *service) TryDebit(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		s.metrics.RecordError(OpDebit, "invalid_amount")
		return fmt.Errorf("%w: debit amount must be positive, got %s", apperrors.ErrInvalidInput, amount)
	}

	err := s.repo.TryDebit(ctx, doctorID, amount)
	if err == nil {
		s.cache.InvalidateWallet(ctx, doctorID)
		s.metrics.RecordMutation(OpDebit, amount)
		return nil
	}

	if errors.Is(err, repositories.ErrInsufficientFunds) {
		s.metrics.RecordError(OpDebit, "insufficient_balance")
		have := decimal.Zero
		if w, werr := s.repo.GetByDoctorID(doctorID); werr == nil {
			have = w.Balance
		}
		return fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientBalance, have, amount)
	}
	if errors.Is(err, repositories.ErrWalletNotFound) {
		return fmt.Errorf("%w: wallet for doctor %d", apperrors.ErrNotFound, doctorID)
	}

	s.metrics.RecordError(OpDebit, "store")
	return err
}

func (s *service) Refund(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		s.metrics.RecordError(OpRefund, "invalid_amount")
		return fmt.Errorf("%w: refund amount must be positive, got %s", apperrors.ErrInvalidInput, amount)
	}

	if err := s.repo.Refund(ctx, doctorID, amount); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return fmt.Errorf("%w: wallet for doctor %d", apperrors.ErrNotFound, doctorID)
		}
		s.metrics.RecordError(OpRefund, "store")
		return err
	}

	s.cache.InvalidateWallet(ctx, doctorID)
	s.metrics.RecordMutation(OpRefund, amount)
	return nil
}

// canonicalBalance floors at zero: the guards on the mutation
// primitives should make a negative result impossible, the floor only
// protects against a historically inconsistent store.
func canonicalBalance(earned, committed decimal.Decimal) decimal.Decimal {
	balance := earned.Sub(committed)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

func walletKey(doctorID uint) string {
	return fmt.Sprintf("%s%d", WalletCachePrefix, doctorID)
}
