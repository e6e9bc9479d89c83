/*
Package wallet manages doctor earnings balances.

The balance stored on a wallet row is a cached projection of the
doctor's history: the sum of base earnings from completed consultations
minus the amounts committed to withdrawals that were not declined. The
service offers two kinds of access to it:

  - Mutation primitives (Credit, TryDebit, Refund) are the only path
    allowed to change the stored balance. Each maps to a single guarded
    UPDATE in the repository, so concurrent callers on the same wallet
    serialize in the store and a debit can never overdraw.

  - Reconcile recomputes the canonical balance from history and
    silently repairs any drift in the cached value. GetBalance always
    reconciles first, so read paths self-heal.

Usage:

	svc := wallet.NewService(repo, cache, logger, metrics)

	// Credit earnings after a completed consultation
	err = svc.Credit(ctx, doctorID, baseFee)

	// Reserve funds for a withdrawal
	err = svc.TryDebit(ctx, doctorID, amount)

	// Canonical balance for display
	balance, err := svc.GetBalance(ctx, doctorID)

Error Handling:

TryDebit returns an error matching errors.ErrInsufficientBalance when
the guard refuses, carrying the current and requested amounts. Missing
wallets surface as errors.ErrNotFound. Reconcile never returns a
user-facing error for drift; repairs are logged and counted only.
*/
package wallet
