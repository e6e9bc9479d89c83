package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionSettings holds the platform commission rates, expressed as
// percent on top of the doctor's base earning. Rates are read at
// consultation creation time only; they are never reapplied to existing
// consultations.
type CommissionSettings struct {
	ID                  uint            `gorm:"primarykey"`
	StandardCommission  decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	EmergencyCommission decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RateFor returns the commission rate for a consultation type.
func (s CommissionSettings) RateFor(consultationType string) decimal.Decimal {
	if consultationType == ConsultationTypeEmergency {
		return s.EmergencyCommission
	}
	return s.StandardCommission
}
