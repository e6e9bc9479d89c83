package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrDuplicateWallet   = errors.New("wallet already exists")
	ErrReconcileFailed   = errors.New("reconciliation failed")
	ErrTransactionFailed = errors.New("transaction failed")
)
