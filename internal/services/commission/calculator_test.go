package commission

import (
	"testing"

	"medipay/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSplitFee(t *testing.T) {
	tests := []struct {
		name           string
		grossFee       string
		rate           string
		wantBase       string
		wantCommission string
	}{
		{
			name:           "ten percent on top",
			grossFee:       "100.00",
			rate:           "10",
			wantBase:       "90.91",
			wantCommission: "9.09",
		},
		{
			name:           "zero rate keeps full fee",
			grossFee:       "250.00",
			rate:           "0",
			wantBase:       "250.00",
			wantCommission: "0",
		},
		{
			name:           "twenty percent emergency rate",
			grossFee:       "600.00",
			rate:           "20",
			wantBase:       "500.00",
			wantCommission: "100.00",
		},
		{
			name:           "small fee rounds without losing a paisa",
			grossFee:       "0.01",
			rate:           "15",
			wantBase:       "0.01",
			wantCommission: "0",
		},
		{
			name:           "fractional rate",
			grossFee:       "199.99",
			rate:           "12.5",
			wantBase:       "177.77",
			wantCommission: "22.22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := SplitFee(dec(tt.grossFee), dec(tt.rate))
			require.NoError(t, err)

			assert.True(t, split.BaseEarning.Equal(dec(tt.wantBase)),
				"base earning = %s, want %s", split.BaseEarning, tt.wantBase)
			assert.True(t, split.Commission.Equal(dec(tt.wantCommission)),
				"commission = %s, want %s", split.Commission, tt.wantCommission)
			assert.True(t, split.BaseEarning.Add(split.Commission).Equal(dec(tt.grossFee)),
				"split must sum to the gross fee exactly")
		})
	}
}

func TestSplitFeeExactSumProperty(t *testing.T) {
	fees := []string{"0.01", "1.00", "33.33", "100.00", "123.45", "999.99", "5000.00"}
	rates := []string{"0", "1", "2.5", "10", "12.5", "15", "18", "20", "33.33", "100"}

	for _, f := range fees {
		for _, r := range rates {
			split, err := SplitFee(dec(f), dec(r))
			require.NoError(t, err, "fee=%s rate=%s", f, r)

			assert.True(t, split.BaseEarning.Add(split.Commission).Equal(dec(f)),
				"fee=%s rate=%s: %s + %s != %s", f, r, split.BaseEarning, split.Commission, f)
			assert.False(t, split.Commission.IsNegative(), "fee=%s rate=%s", f, r)
			assert.False(t, split.BaseEarning.IsNegative(), "fee=%s rate=%s", f, r)
			assert.True(t, split.BaseEarning.Equal(split.BaseEarning.RoundBank(2)),
				"base earning must be at minor-unit precision")
			assert.True(t, split.Commission.Equal(split.Commission.RoundBank(2)),
				"commission must be at minor-unit precision")
		}
	}
}

func TestSplitFeeInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		grossFee string
		rate     string
	}{
		{name: "zero fee", grossFee: "0", rate: "10"},
		{name: "negative fee", grossFee: "-5.00", rate: "10"},
		{name: "negative rate", grossFee: "100.00", rate: "-1"},
		{name: "sub-minor-unit fee", grossFee: "10.001", rate: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitFee(dec(tt.grossFee), dec(tt.rate))
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
}
