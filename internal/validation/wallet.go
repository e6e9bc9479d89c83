package validation

import (
	"regexp"

	"medipay/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ifscRegex    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountRegex = regexp.MustCompile(`^[0-9]{9,18}$`)

	MinWithdrawalAmount  = decimal.RequireFromString(minWithdrawal)
	MaxWithdrawalAmount  = decimal.RequireFromString(maxWithdrawal)
	MinConsultationFee   = decimal.RequireFromString(minConsultFee)
	MaxConsultationFee   = decimal.RequireFromString(maxConsultFee)
	MaxCommissionPercent = decimal.RequireFromString(maxCommissionPct)
)

// WithdrawalAmount validates a requested withdrawal amount.
func (v *Validator) WithdrawalAmount(field string, amount decimal.Decimal) {
	v.Amount(field, amount, MinWithdrawalAmount, MaxWithdrawalAmount)
}

// ConsultationFee validates a gross consultation fee.
func (v *Validator) ConsultationFee(field string, fee decimal.Decimal) {
	v.Amount(field, fee, MinConsultationFee, MaxConsultationFee)
}

// CommissionRate validates a commission percentage.
func (v *Validator) CommissionRate(field string, rate decimal.Decimal) {
	v.Amount(field, rate, decimal.Zero, MaxCommissionPercent)
}

// BankDetails validates a payout destination.
func (v *Validator) BankDetails(b models.BankDetails) {
	v.Required("account_holder_name", b.AccountHolderName)
	v.MaxLength("account_holder_name", b.AccountHolderName, MaxAccountHolderLength)
	v.Check(accountRegex.MatchString(b.AccountNumber), "account_number", "must be 9 to 18 digits")
	v.Check(ifscRegex.MatchString(b.IFSCCode), "ifsc_code", "must be a valid IFSC code")
}
