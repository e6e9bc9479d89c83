package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Consultation statuses
const (
	ConsultationStatusRinging   = "ringing"
	ConsultationStatusAccepted  = "accepted"
	ConsultationStatusCompleted = "completed"
	ConsultationStatusDeclined  = "declined"
	ConsultationStatusCancelled = "cancelled"
	ConsultationStatusTimeout   = "timeout"
)

// Consultation types
const (
	ConsultationTypeStandard  = "consultation"
	ConsultationTypeEmergency = "emergency"
)

// Consultation is a booked service event. Fee, BaseFee and Commission
// are fixed at creation time from the commission settings active at that
// moment; later settings changes never alter them. Only consultations in
// status completed count toward doctor earnings, and a completed
// consultation is immutable.
type Consultation struct {
	gorm.Model
	DoctorID    uint            `gorm:"index;not null"`
	PatientID   uint            `gorm:"index;not null"`
	Type        string          `gorm:"not null;default:'consultation'"`
	Fee         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	BaseFee     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Commission  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      string          `gorm:"not null;default:'ringing'"`
	CompletedAt *time.Time
}
