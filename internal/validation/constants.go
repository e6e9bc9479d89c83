package validation

const (
	// String lengths
	MaxReasonLength        = 500
	MaxAccountHolderLength = 100

	// Amount limits as strings, parsed once at init
	minWithdrawal    = "1.00"
	maxWithdrawal    = "1000000.00"
	minConsultFee    = "0.01"
	maxConsultFee    = "100000.00"
	maxCommissionPct = "100"
)
