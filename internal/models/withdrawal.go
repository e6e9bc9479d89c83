package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Withdrawal request statuses
const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusCredited = "credited"
	WithdrawalStatusDeclined = "declined"
)

// WithdrawalRequest is a doctor's request to pay out part of the wallet
// balance. The amount is debited from the wallet when the request is
// created and stays reserved until the request reaches a terminal
// status: credited keeps the debit, declined refunds it.
type WithdrawalRequest struct {
	gorm.Model
	Reference       string          `gorm:"uniqueIndex;not null"`
	DoctorID        uint            `gorm:"index;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	BankDetails     BankDetails     `gorm:"embedded;embeddedPrefix:bank_"`
	Status          string          `gorm:"not null;default:'pending'"`
	RejectionReason string
}

// Terminal reports whether no further transition is permitted.
func (w *WithdrawalRequest) Terminal() bool {
	return w.Status == WithdrawalStatusCredited || w.Status == WithdrawalStatusDeclined
}
