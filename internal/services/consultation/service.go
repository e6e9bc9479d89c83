package consultation

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "medipay/internal/errors"
	"medipay/internal/models"
	"medipay/internal/repositories"
	"medipay/internal/services/commission"
	"medipay/internal/services/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	repo     repositories.ConsultationRepository
	settings repositories.SettingsRepository
	doctors  repositories.DoctorRepository
	wallets  wallet.Service
	logger   *zap.Logger
}

// NewService creates a new consultation service
func NewService(
	repo repositories.ConsultationRepository,
	settings repositories.SettingsRepository,
	doctors repositories.DoctorRepository,
	wallets wallet.Service,
	logger *zap.Logger,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if settings == nil {
		panic("settings repo is required")
	}
	if doctors == nil {
		panic("doctor repo is required")
	}
	if wallets == nil {
		panic("wallet service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		repo:     repo,
		settings: settings,
		doctors:  doctors,
		wallets:  wallets,
		logger:   logger,
	}
}

// Create records a consultation in ringing state with its fee split
// already fixed from the commission rate in force right now.
func (s *service) Create(ctx context.Context, doctorID, patientID uint, consultationType string, fee decimal.Decimal) (*models.Consultation, error) {
	c, err := s.build(ctx, doctorID, patientID, consultationType, fee)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("consultation created",
		zap.Uint("consultation_id", c.ID),
		zap.Uint("doctor_id", doctorID),
		zap.String("type", consultationType),
		zap.String("fee", fee.String()),
	)
	return c, nil
}

// Complete flips a live consultation to completed and credits the
// doctor's base earning. The status flip is a conditional update, so a
// retried completion cannot credit twice.
func (s *service) Complete(ctx context.Context, id uint) (*models.Consultation, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.MarkCompleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: consultation %d is %s", apperrors.ErrInvalidStateTransition, id, c.Status)
	}

	if err := s.wallets.Credit(ctx, c.DoctorID, c.BaseFee); err != nil {
		return nil, fmt.Errorf("failed to credit earning: %w", err)
	}

	s.logger.Info("consultation completed",
		zap.Uint("consultation_id", id),
		zap.Uint("doctor_id", c.DoctorID),
		zap.String("base_fee", c.BaseFee.String()),
	)
	return s.Get(ctx, id)
}

func (s *service) RecordCompleted(ctx context.Context, doctorID, patientID uint, consultationType string, fee decimal.Decimal) (*models.Consultation, error) {
	c, err := s.build(ctx, doctorID, patientID, consultationType, fee)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c.Status = models.ConsultationStatusCompleted
	c.CompletedAt = &now

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	if err := s.wallets.Credit(ctx, doctorID, c.BaseFee); err != nil {
		return nil, fmt.Errorf("failed to credit earning: %w", err)
	}

	s.logger.Info("consultation recorded",
		zap.Uint("consultation_id", c.ID),
		zap.Uint("doctor_id", doctorID),
		zap.String("base_fee", c.BaseFee.String()),
	)
	return c, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Consultation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrConsultationNotFound) {
			return nil, fmt.Errorf("%w: consultation %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

func (s *service) ListByDoctor(ctx context.Context, doctorID uint) ([]models.Consultation, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *service) build(ctx context.Context, doctorID, patientID uint, consultationType string, fee decimal.Decimal) (*models.Consultation, error) {
	if consultationType != models.ConsultationTypeStandard && consultationType != models.ConsultationTypeEmergency {
		return nil, fmt.Errorf("%w: unknown consultation type %q", apperrors.ErrInvalidInput, consultationType)
	}

	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, repositories.ErrDoctorNotFound) {
			return nil, fmt.Errorf("%w: doctor %d", apperrors.ErrNotFound, doctorID)
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission settings: %w", err)
	}

	split, err := commission.SplitFee(fee, settings.RateFor(consultationType))
	if err != nil {
		return nil, err
	}

	return &models.Consultation{
		DoctorID:   doctorID,
		PatientID:  patientID,
		Type:       consultationType,
		Fee:        fee,
		BaseFee:    split.BaseEarning,
		Commission: split.Commission,
		Status:     models.ConsultationStatusRinging,
	}, nil
}
