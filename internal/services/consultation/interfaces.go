package consultation

import (
	"context"

	"medipay/internal/models"

	"github.com/shopspring/decimal"
)

// Service records consultations and credits doctor earnings.
//
// The fee split is computed against the commission rates in force when
// the consultation is created and stored on the record, so later rate
// changes never rewrite history. Completing a consultation credits the
// doctor's share exactly once.
type Service interface {
	Create(ctx context.Context, doctorID, patientID uint, consultationType string, fee decimal.Decimal) (*models.Consultation, error)
	Complete(ctx context.Context, id uint) (*models.Consultation, error)

	// RecordCompleted creates a consultation that is already completed
	// and credits the earning in one call, for call events reported
	// after the fact.
	RecordCompleted(ctx context.Context, doctorID, patientID uint, consultationType string, fee decimal.Decimal) (*models.Consultation, error)

	Get(ctx context.Context, id uint) (*models.Consultation, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]models.Consultation, error)
}
