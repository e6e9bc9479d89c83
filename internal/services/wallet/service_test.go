package wallet

import (
	"context"
	"sync"
	"testing"

	apperrors "medipay/internal/errors"
	"medipay/internal/models"
	"medipay/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeWalletRepo implements repositories.WalletRepository in memory with
// the same guard semantics as the SQL implementation: every mutation is
// a single compare-and-update under one lock.
type fakeWalletRepo struct {
	mu        sync.Mutex
	wallets   map[uint]*models.Wallet
	earned    map[uint]decimal.Decimal
	committed map[uint]decimal.Decimal
	setCalls  int
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets:   make(map[uint]*models.Wallet),
		earned:    make(map[uint]decimal.Decimal),
		committed: make(map[uint]decimal.Decimal),
	}
}

func (f *fakeWalletRepo) Create(w *models.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.wallets[w.DoctorID]; ok {
		return repositories.ErrDuplicateWallet
	}
	w.Balance = decimal.Zero
	f.wallets[w.DoctorID] = w
	return nil
}

func (f *fakeWalletRepo) GetByDoctorID(doctorID uint) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[doctorID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWalletRepo) Credit(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[doctorID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

func (f *fakeWalletRepo) TryDebit(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[doctorID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	if w.Balance.LessThan(amount) {
		return repositories.ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

func (f *fakeWalletRepo) Refund(ctx context.Context, doctorID uint, amount decimal.Decimal) error {
	return f.Credit(ctx, doctorID, amount)
}

func (f *fakeWalletRepo) SetBalance(ctx context.Context, doctorID uint, balance decimal.Decimal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[doctorID]
	if !ok || w.Balance.Equal(balance) {
		return false, nil
	}
	w.Balance = balance
	f.setCalls++
	return true, nil
}

func (f *fakeWalletRepo) SumCompletedEarnings(ctx context.Context, doctorID uint) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.earned[doctorID], nil
}

func (f *fakeWalletRepo) SumCommittedWithdrawals(ctx context.Context, doctorID uint) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.committed[doctorID], nil
}

func (f *fakeWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(f)
}

func (f *fakeWalletRepo) balance(doctorID uint) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wallets[doctorID].Balance
}

type fakeCache struct {
	mu      sync.Mutex
	wallets map[uint]*models.Wallet
}

func newFakeCache() *fakeCache {
	return &fakeCache{wallets: make(map[uint]*models.Wallet)}
}

func (c *fakeCache) GetWallet(ctx context.Context, doctorID uint) (*models.Wallet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.wallets[doctorID]
	if !ok {
		return nil, nil
	}
	return w, nil
}

func (c *fakeCache) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wallets[wallet.DoctorID] = wallet
	return nil
}

func (c *fakeCache) InvalidateWallet(ctx context.Context, doctorID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.wallets, doctorID)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeWalletRepo) {
	t.Helper()
	repo := newFakeWalletRepo()
	svc := NewService(repo, newFakeCache(), nil, nil)
	return svc, repo
}

func seedWallet(t *testing.T, svc Service, repo *fakeWalletRepo, doctorID uint, earned string) {
	t.Helper()
	_, err := svc.CreateWallet(context.Background(), doctorID)
	require.NoError(t, err)
	repo.earned[doctorID] = dec(earned)
	repo.committed[doctorID] = decimal.Zero
	require.NoError(t, svc.Credit(context.Background(), doctorID, dec(earned)))
}

func TestCreditAndGetBalance(t *testing.T) {
	svc, repo := newTestService(t)
	seedWallet(t, svc, repo, 1, "500.00")

	balance, err := svc.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("500.00")), "balance = %s", balance)
}

func TestCreditValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		amount string
	}{
		{name: "zero amount", amount: "0"},
		{name: "negative amount", amount: "-10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Credit(context.Background(), 1, dec(tt.amount))
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestCreditUnknownWallet(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Credit(context.Background(), 99, dec("10.00"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTryDebitGuard(t *testing.T) {
	svc, repo := newTestService(t)
	seedWallet(t, svc, repo, 1, "100.00")

	err := svc.TryDebit(context.Background(), 1, dec("150.00"))
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "balance 100", "error must carry the current balance")
	assert.Contains(t, err.Error(), "requested 150", "error must carry the requested amount")
	assert.True(t, repo.balance(1).Equal(dec("100.00")), "failed debit must not change the balance")

	require.NoError(t, svc.TryDebit(context.Background(), 1, dec("100.00")))
	assert.True(t, repo.balance(1).IsZero())
}

func TestTryDebitConcurrent(t *testing.T) {
	svc, repo := newTestService(t)
	seedWallet(t, svc, repo, 1, "500.00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.TryDebit(context.Background(), 1, dec("300.00"))
		}(i)
	}
	wg.Wait()

	var succeeded, refused int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
			refused++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent debit may win")
	assert.Equal(t, 1, refused)
	assert.True(t, repo.balance(1).Equal(dec("200.00")), "balance = %s", repo.balance(1))
}

func TestRefundReleasesReservation(t *testing.T) {
	svc, repo := newTestService(t)
	seedWallet(t, svc, repo, 1, "500.00")

	require.NoError(t, svc.TryDebit(context.Background(), 1, dec("200.00")))
	assert.True(t, repo.balance(1).Equal(dec("300.00")))

	require.NoError(t, svc.Refund(context.Background(), 1, dec("200.00")))
	assert.True(t, repo.balance(1).Equal(dec("500.00")))
}

func TestReconcileRepairsDrift(t *testing.T) {
	svc, repo := newTestService(t)
	seedWallet(t, svc, repo, 1, "500.00")
	repo.committed[1] = dec("200.00")

	// The stored balance (500) has drifted from the canonical value (300).
	canonical, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, canonical.Equal(dec("300.00")), "canonical = %s", canonical)
	assert.True(t, repo.balance(1).Equal(dec("300.00")), "stored balance must be repaired")
}

func TestReconcileIdempotent(t *testing.T) {
	svc, repo := newTestService(t)
	seedWallet(t, svc, repo, 1, "500.00")
	repo.committed[1] = dec("200.00")

	first, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)
	writesAfterFirst := repo.setCalls

	second, err := svc.Reconcile(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, writesAfterFirst, repo.setCalls,
		"second reconcile with no intervening writes must not write")
}

func TestGetBalanceUnknownWallet(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetBalance(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCanonicalBalanceFloorsAtZero(t *testing.T) {
	assert.True(t, canonicalBalance(dec("100.00"), dec("250.00")).IsZero())
	assert.True(t, canonicalBalance(dec("250.00"), dec("100.00")).Equal(dec("150.00")))
	assert.True(t, canonicalBalance(decimal.Zero, decimal.Zero).IsZero())
}
