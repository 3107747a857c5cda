package order

import (
	"fmt"
	"math/rand/v2"

	"marketplace/internal/pkg/errs"
)

const orderNumberLength = 8

// GenerateOrderNumber produces a human-friendly 8-digit order number.
// Uniqueness is enforced by the storage layer; collisions are retried there.
func GenerateOrderNumber() string {
	digits := make([]byte, orderNumberLength)
	for i := range digits {
		digits[i] = byte('0' + rand.IntN(10))
	}
	return string(digits)
}

// ValidateOrderNumber checks that a persisted order number has the expected
// shape: exactly eight decimal digits.
func ValidateOrderNumber(number string) error {
	if len(number) != orderNumberLength {
		return errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q is not %d characters", number, orderNumberLength))
	}
	for _, c := range number {
		if c < '0' || c > '9' {
			return errs.NewValueIsInvalidErrorWithCause("order number",
				fmt.Errorf("%q contains a non-digit", number))
		}
	}
	return nil
}
