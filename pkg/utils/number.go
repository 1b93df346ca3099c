package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

const (
	ERR_EMPTY_STRING     = "empty string"
	ERR_INVALID_AMOUNT   = "invalid amount format"
	ERR_NEGATIVE_AMOUNT  = "amount must be positive"
	ERR_AMOUNT_TOO_LARGE = "amount too large"
)

var (
	ErrEmptyString    = errors.New(ERR_EMPTY_STRING)
	ErrInvalidAmount  = errors.New(ERR_INVALID_AMOUNT)
	ErrNegativeAmount = errors.New(ERR_NEGATIVE_AMOUNT)
	ErrAmountTooLarge = errors.New(ERR_AMOUNT_TOO_LARGE)
)

// AmountTolerance is the distance under which an amount is treated as integral.
const AmountTolerance = 1e-8

// MaxAmount is the largest accepted amount. Integers up to it are exact in a float64.
const MaxAmount = 1e15

// GCD returns the greatest common divisor of a and b, always non-negative.
func GCD[T constraints.Integer](a, b T) T {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// GCDAll folds GCD over vals. Returns 0 for an empty slice.
func GCDAll[T constraints.Integer](vals ...T) T {
	var g T
	for _, v := range vals {
		g = GCD(g, v)
		if g == 1 {
			return g
		}
	}
	return g
}

// ParseAmount converts a stoichiometric subscript ("2", "0.5", "1.25") into a float64.
// Amounts must be strictly positive and finite.
//
//	a, _ := ParseAmount("2")    // 2
//	b, _ := ParseAmount("0.75") // 0.75
//	_, err := ParseAmount("0")  // ErrNegativeAmount
//	_, err = ParseAmount("1e16") // ErrAmountTooLarge
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyString
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrNegativeAmount
	}
	if v > MaxAmount {
		return 0, ErrAmountTooLarge
	}
	return v, nil
}

// IsNearInt reports whether x is within tol of an integer.
func IsNearInt(x, tol float64) bool {
	return math.Abs(x-math.Round(x)) <= tol
}

// FormatAmount renders an amount the way it appears in a formula:
// integral values without decimals, others with at most 8 decimals.
func FormatAmount(x float64) string {
	if IsNearInt(x, AmountTolerance) {
		return strconv.FormatFloat(math.Round(x), 'f', 0, 64)
	}
	s := strconv.FormatFloat(x, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
