// Package commission splits a gross consultation fee into the doctor's
// base earning and the platform commission.
package commission

import (
	"fmt"

	"medipay/internal/errors"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Split is the result of dividing a gross fee. BaseEarning plus
// Commission always equals the gross fee exactly.
type Split struct {
	BaseEarning decimal.Decimal
	Commission  decimal.Decimal
}

// SplitFee divides grossFee between doctor and platform. The rate is
// percent on top of the base earning, so commission = gross * rate /
// (100 + rate). Both components are rounded to the minor currency unit
// half-even; any rounding remainder is folded into the larger component
// so the split stays exact.
func SplitFee(grossFee, ratePercent decimal.Decimal) (Split, error) {
	if grossFee.Sign() <= 0 {
		return Split{}, fmt.Errorf("%w: gross fee must be positive, got %s", errors.ErrInvalidInput, grossFee)
	}
	if ratePercent.Sign() < 0 {
		return Split{}, fmt.Errorf("%w: commission rate must not be negative, got %s", errors.ErrInvalidInput, ratePercent)
	}
	if !grossFee.Equal(grossFee.RoundBank(2)) {
		return Split{}, fmt.Errorf("%w: gross fee %s has sub-minor-unit precision", errors.ErrInvalidInput, grossFee)
	}

	if ratePercent.IsZero() {
		return Split{BaseEarning: grossFee, Commission: decimal.Zero}, nil
	}

	exact := grossFee.Mul(ratePercent).Div(hundred.Add(ratePercent))
	commission := exact.RoundBank(2)
	base := grossFee.Sub(exact).RoundBank(2)

	// Rounding both components independently can lose or create a minor
	// unit; fold the remainder into the larger component.
	if remainder := grossFee.Sub(base).Sub(commission); !remainder.IsZero() {
		if base.GreaterThanOrEqual(commission) {
			base = base.Add(remainder)
		} else {
			commission = commission.Add(remainder)
		}
	}

	return Split{BaseEarning: base, Commission: commission}, nil
}
