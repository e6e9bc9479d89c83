package withdrawal

import (
	"context"
	"errors"
	"fmt"

	apperrors "medipay/internal/errors"
	"medipay/internal/models"
	"medipay/internal/repositories"
	"medipay/internal/services/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	repo    repositories.WithdrawalRepository
	wallets repositories.WalletRepository
	doctors repositories.DoctorRepository
	cache   wallet.CacheOperator
	logger  *zap.Logger
}

// NewService creates a new withdrawal service
func NewService(
	repo repositories.WithdrawalRepository,
	wallets repositories.WalletRepository,
	doctors repositories.DoctorRepository,
	cache wallet.CacheOperator,
	logger *zap.Logger,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if wallets == nil {
		panic("wallet repo is required")
	}
	if doctors == nil {
		panic("doctor repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		repo:    repo,
		wallets: wallets,
		doctors: doctors,
		cache:   cache,
		logger:  logger,
	}
}

// Create reserves amount against the doctor's wallet and persists a
// pending request carrying a snapshot of the payout destination. The
// debit and the insert commit atomically: if the guard refuses the
// debit no request exists, and if the insert fails the debit rolls
// back.
func (s *service) Create(ctx context.Context, doctorID uint, amount decimal.Decimal) (*models.WithdrawalRequest, error) {
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive, got %s", apperrors.ErrInvalidInput, amount)
	}

	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repositories.ErrDoctorNotFound) {
			return nil, fmt.Errorf("%w: doctor %d", apperrors.ErrNotFound, doctorID)
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}

	if !doctor.BankDetails.HasPayoutDetails() {
		return nil, fmt.Errorf("%w", apperrors.ErrMissingPayoutDetails)
	}

	req := &models.WithdrawalRequest{
		Reference:   uuid.NewString(),
		DoctorID:    doctorID,
		Amount:      amount,
		BankDetails: doctor.BankDetails,
		Status:      models.WithdrawalStatusPending,
	}

	err = s.repo.ExecuteInTransaction(func(wtx repositories.WithdrawalRepository, waltx repositories.WalletRepository) error {
		if err := waltx.TryDebit(ctx, doctorID, amount); err != nil {
			return err
		}
		return wtx.Create(ctx, req)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			have := decimal.Zero
			if w, werr := s.wallets.GetByDoctorID(doctorID); werr == nil {
				have = w.Balance
			}
			return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientBalance, have, amount)
		}
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, fmt.Errorf("%w: wallet for doctor %d", apperrors.ErrNotFound, doctorID)
		}
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}

	s.cache.InvalidateWallet(ctx, doctorID)
	s.logger.Info("withdrawal requested",
		zap.Uint("doctor_id", doctorID),
		zap.String("reference", req.Reference),
		zap.String("amount", amount.String()),
	)

	return req, nil
}

// Transition moves a request toward target. The status change is a
// conditional update keyed on the permitted source statuses, so a
// retried or racing request that arrives after the resource left those
// statuses gets InvalidStateTransition instead of being re-applied.
func (s *service) Transition(ctx context.Context, id uint, target string, reason string) (*models.WithdrawalRequest, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch target {
	case models.WithdrawalStatusApproved:
		err = s.approve(ctx, req)
	case models.WithdrawalStatusCredited:
		err = s.credit(ctx, req)
	case models.WithdrawalStatusDeclined:
		err = s.decline(ctx, req, reason)
	default:
		return nil, fmt.Errorf("%w: %v %q", apperrors.ErrInvalidInput, ErrUnknownTargetStatus, target)
	}
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *service) approve(ctx context.Context, req *models.WithdrawalRequest) error {
	// Administrative acknowledgement only; the reservation from
	// creation time stays in place.
	ok, err := s.repo.TransitionStatus(ctx, req.ID,
		[]string{models.WithdrawalStatusPending},
		models.WithdrawalStatusApproved, "")
	if err != nil {
		return err
	}
	if !ok {
		return transitionError(req, models.WithdrawalStatusApproved)
	}
	return nil
}

func (s *service) credit(ctx context.Context, req *models.WithdrawalRequest) error {
	// The payout happened out-of-band; the amount was already debited
	// at creation, so no balance effect here.
	ok, err := s.repo.TransitionStatus(ctx, req.ID,
		[]string{models.WithdrawalStatusPending, models.WithdrawalStatusApproved},
		models.WithdrawalStatusCredited, "")
	if err != nil {
		return err
	}
	if !ok {
		return transitionError(req, models.WithdrawalStatusCredited)
	}

	s.logger.Info("withdrawal credited",
		zap.Uint("withdrawal_id", req.ID),
		zap.Uint("doctor_id", req.DoctorID),
		zap.String("amount", req.Amount.String()),
	)
	return nil
}

func (s *service) decline(ctx context.Context, req *models.WithdrawalRequest, reason string) error {
	if reason == "" {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, ErrMissingReason)
	}

	// The refund is tied to winning the status transition inside one
	// database transaction: a request that is already terminal cannot
	// be refunded twice.
	err := s.repo.ExecuteInTransaction(func(wtx repositories.WithdrawalRepository, waltx repositories.WalletRepository) error {
		ok, err := wtx.TransitionStatus(ctx, req.ID,
			[]string{models.WithdrawalStatusPending, models.WithdrawalStatusApproved},
			models.WithdrawalStatusDeclined, reason)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTransitionRefused
		}
		return waltx.Refund(ctx, req.DoctorID, req.Amount)
	})
	if err != nil {
		if errors.Is(err, ErrTransitionRefused) {
			return transitionError(req, models.WithdrawalStatusDeclined)
		}
		return fmt.Errorf("failed to decline withdrawal: %w", err)
	}

	s.cache.InvalidateWallet(ctx, req.DoctorID)
	s.logger.Info("withdrawal declined",
		zap.Uint("withdrawal_id", req.ID),
		zap.Uint("doctor_id", req.DoctorID),
		zap.String("amount", req.Amount.String()),
		zap.String("reason", reason),
	)
	return nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.WithdrawalRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrWithdrawalNotFound) {
			return nil, fmt.Errorf("%w: withdrawal %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return req, nil
}

func (s *service) ListByDoctor(ctx context.Context, doctorID uint) ([]models.WithdrawalRequest, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *service) ListAll(ctx context.Context) ([]models.WithdrawalRequest, error) {
	return s.repo.ListAll(ctx)
}

func transitionError(req *models.WithdrawalRequest, target string) error {
	return fmt.Errorf("%w: cannot move withdrawal %d from %s to %s",
		apperrors.ErrInvalidStateTransition, req.ID, req.Status, target)
}
