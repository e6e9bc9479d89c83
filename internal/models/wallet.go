package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a doctor's available earnings. Balance is a cached
// projection of completed consultations minus committed withdrawals;
// the canonical value is always derivable from that history.
type Wallet struct {
	ID        uint            `gorm:"primarykey"`
	DoctorID  uint            `gorm:"uniqueIndex;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Currency  string          `gorm:"default:'INR'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Ensure balance starts at 0
	w.Balance = decimal.Zero
	return nil
}
