package models

import (
	"gorm.io/gorm"
)

// BankDetails is the payout destination for a doctor. A copy is
// snapshotted onto every withdrawal request at creation time.
type BankDetails struct {
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
}

// HasPayoutDetails reports whether the destination is usable for a payout.
func (b BankDetails) HasPayoutDetails() bool {
	return b.AccountNumber != ""
}

type Doctor struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Email       string `gorm:"uniqueIndex;not null"`
	Phone       string `gorm:"uniqueIndex;not null"`
	Specialty   string
	IsAvailable bool        `gorm:"default:false"`
	Status      string      `gorm:"default:'active'"`
	BankDetails BankDetails `gorm:"embedded;embeddedPrefix:bank_"`
}
