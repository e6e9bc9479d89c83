package wallet

// Default configuration values
const (
	DefaultCurrency = "INR"
)

// Mutation operation names used for metrics and logging
const (
	OpCredit = "credit"
	OpDebit  = "debit"
	OpRefund = "refund"
)

// Cache keys
const (
	WalletCachePrefix = "wallet:"
)
