package consultation

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
	"gorm.io/gorm"
)

type fakeConsultationRepo struct {
	mu      sync.Mutex
	records map[uint]*models.Consultation
	nextID  uint
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{records: make(map[uint]*models.Consultation), nextID: 1}
}

func (f *fakeConsultationRepo) Create(_ context.Context, c *models.Consultation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.nextID
	f.nextID++
	stored := *c
	f.records[c.ID] = &stored
	return nil
}

func (f *fakeConsultationRepo) GetByID(_ context.Context, id uint) (*models.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.records[id]
	if !ok {
		return nil, repositories.ErrConsultationNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeConsultationRepo) ListByDoctor(_ context.Context, doctorID uint) ([]models.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Consultation
	for _, c := range f.records {
		if c.DoctorID == doctorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeConsultationRepo) MarkCompleted(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.records[id]
	if !ok {
		return false, nil
	}
	if c.Status != models.ConsultationStatusRinging && c.Status != models.ConsultationStatusAccepted {
		return false, nil
	}
	c.Status = models.ConsultationStatusCompleted
	return true, nil
}

type fakeSettingsRepo struct {
	settings models.CommissionSettings
}

func (f *fakeSettingsRepo) Get(context.Context) (*models.CommissionSettings, error) {
	copied := f.settings
	return &copied, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s *models.CommissionSettings) error {
	f.settings = *s
	return nil
}

type fakeDoctorRepo struct {
	doctors map[uint]*models.Doctor
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id uint) (*models.Doctor, error) {
	doctor, ok := f.doctors[id]
	if !ok {
		return nil, repositories.ErrDoctorNotFound
	}
	return doctor, nil
}

func (f *fakeDoctorRepo) ListPayable(context.Context) ([]repositories.DoctorPayout, error) {
	return nil, nil
}

// fakeWalletService records credits; nothing else is exercised here.
type fakeWalletService struct {
	mu      sync.Mutex
	credits []decimal.Decimal
}

func (f *fakeWalletService) CreateWallet(context.Context, uint) (*models.Wallet, error) {
	return nil, nil
}

func (f *fakeWalletService) GetWallet(context.Context, uint) (*models.Wallet, error) {
	return nil, nil
}

func (f *fakeWalletService) GetBalance(context.Context, uint) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeWalletService) Reconcile(context.Context, uint) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeWalletService) Credit(_ context.Context, _ uint, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits = append(f.credits, amount)
	return nil
}

func (f *fakeWalletService) TryDebit(context.Context, uint, decimal.Decimal) error { return nil }
func (f *fakeWalletService) Refund(context.Context, uint, decimal.Decimal) error   { return nil }

func (f *fakeWalletService) credited() []decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]decimal.Decimal(nil), f.credits...)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

const testDoctorID uint = 3

func newTestService(t *testing.T) (Service, *fakeSettingsRepo, *fakeWalletService) {
	t.Helper()
	settings := &fakeSettingsRepo{settings: models.CommissionSettings{
		StandardCommission:  dec("10"),
		EmergencyCommission: dec("20"),
	}}
	doctors := &fakeDoctorRepo{doctors: map[uint]*models.Doctor{
		testDoctorID: {Model: gorm.Model{ID: testDoctorID}, Name: "Dr. Ravi Menon"},
	}}
	wallets := &fakeWalletService{}
	svc := NewService(newFakeConsultationRepo(), settings, doctors, wallets, nil)
	return svc, settings, wallets
}

func TestCreateSplitsFee(t *testing.T) {
	svc, _, _ := newTestService(t)

	c, err := svc.Create(context.Background(), testDoctorID, 11, models.ConsultationTypeStandard, dec("100.00"))
	require.NoError(t, err)

	assert.Equal(t, models.ConsultationStatusRinging, c.Status)
	assert.True(t, c.BaseFee.Equal(dec("90.91")), "base fee %s", c.BaseFee)
	assert.True(t, c.Commission.Equal(dec("9.09")), "commission %s", c.Commission)
	assert.True(t, c.BaseFee.Add(c.Commission).Equal(c.Fee))
}

func TestCreateUsesEmergencyRate(t *testing.T) {
	svc, _, _ := newTestService(t)

	c, err := svc.Create(context.Background(), testDoctorID, 11, models.ConsultationTypeEmergency, dec("120.00"))
	require.NoError(t, err)

	// 120 * 20 / 120 = 20
	assert.True(t, c.Commission.Equal(dec("20.00")), "commission %s", c.Commission)
	assert.True(t, c.BaseFee.Equal(dec("100.00")), "base fee %s", c.BaseFee)
}

func TestRateChangeDoesNotRewriteHistory(t *testing.T) {
	svc, settings, _ := newTestService(t)
	ctx := context.Background()

	before, err := svc.Create(ctx, testDoctorID, 11, models.ConsultationTypeStandard, dec("100.00"))
	require.NoError(t, err)

	require.NoError(t, settings.Update(ctx, &models.CommissionSettings{
		StandardCommission:  dec("25"),
		EmergencyCommission: dec("30"),
	}))

	after, err := svc.Create(ctx, testDoctorID, 12, models.ConsultationTypeStandard, dec("100.00"))
	require.NoError(t, err)

	stored, err := svc.Get(ctx, before.ID)
	require.NoError(t, err)
	assert.True(t, stored.Commission.Equal(dec("9.09")), "old record commission %s", stored.Commission)
	assert.True(t, after.Commission.Equal(dec("20.00")), "new record commission %s", after.Commission)
}

func TestCompleteCreditsBaseFeeOnce(t *testing.T) {
	svc, _, wallets := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, testDoctorID, 11, models.ConsultationTypeStandard, dec("100.00"))
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConsultationStatusCompleted, completed.Status)

	_, err = svc.Complete(ctx, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStateTransition)

	credits := wallets.credited()
	require.Len(t, credits, 1)
	assert.True(t, credits[0].Equal(dec("90.91")))
}

func TestRecordCompleted(t *testing.T) {
	svc, _, wallets := newTestService(t)

	c, err := svc.RecordCompleted(context.Background(), testDoctorID, 11, models.ConsultationTypeStandard, dec("100.00"))
	require.NoError(t, err)

	assert.Equal(t, models.ConsultationStatusCompleted, c.Status)
	require.NotNil(t, c.CompletedAt)

	credits := wallets.credited()
	require.Len(t, credits, 1)
	assert.True(t, credits[0].Equal(dec("90.91")))
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testDoctorID, 11, "house-visit", dec("100.00"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Create(ctx, testDoctorID, 11, models.ConsultationTypeStandard, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Create(ctx, 999, 11, models.ConsultationTypeStandard, dec("100.00"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetUnknownConsultation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
