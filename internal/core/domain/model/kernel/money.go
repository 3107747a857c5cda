package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
)

// Money is a non-negative monetary amount stored as an integer number of
// cents. Integer arithmetic keeps order totals exact: an order's total is
// always precisely subtotal + delivery fee + tax with no float drift.
//
// The zero value is a valid amount of 0.00.
type Money int64

// NewMoney creates a Money from a cent amount. Negative amounts are rejected.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money(cents), nil
}

// MoneyFromFloat creates a Money from a decimal currency amount, rounding
// half away from zero to whole cents.
func MoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errs.NewValueIsInvalidError("money")
	}
	return NewMoney(int64(math.Round(amount * 100)))
}

// Validate rejects amounts that bypassed NewMoney and went negative.
func (m Money) Validate() error {
	if m < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", int64(m)))
	}
	return nil
}

// Cents returns the amount as a number of cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// Float64 returns the amount as a decimal currency value.
// Intended for presentation; arithmetic stays in cents.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// MultiplyQty returns the amount multiplied by a line-item quantity.
func (m Money) MultiplyQty(quantity int) Money {
	return m * Money(quantity)
}

// MultiplyRate returns the amount scaled by rate, rounded half away from
// zero to whole cents. Used for percentage charges such as the 10% tax.
func (m Money) MultiplyRate(rate float64) Money {
	return Money(math.Round(float64(m) * rate))
}

// String renders the amount as a decimal string, e.g. "12.34".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m/100, m%100)
}
