package formula

import (
	"math"
	"slices"
	"strings"

	"github.com/hankgalt/design-space/pkg/utils"
)

const (
	// scaledTolerance is how close min-normalized amounts must be to integers.
	scaledTolerance = 1e-4
	// equalTolerance is used when comparing reduced amounts.
	equalTolerance = 1e-6
)

// Composition maps element symbols to relative amounts.
type Composition struct {
	amounts map[string]float64
	table   *ElementTable
	order   Order
}

// Amount returns the amount of symbol, 0 if absent.
func (c Composition) Amount(symbol string) float64 {
	return c.amounts[symbol]
}

// Len returns the number of distinct elements.
func (c Composition) Len() int { return len(c.amounts) }

// Elements returns the symbols in rendering order.
func (c Composition) Elements() []string {
	syms := make([]string, 0, len(c.amounts))
	for s := range c.amounts {
		syms = append(syms, s)
	}
	slices.SortFunc(syms, func(a, b string) int {
		return c.order.compare(c.table, a, b)
	})
	return syms
}

// Formula renders the composition as is, without reducing it.
func (c Composition) Formula() string {
	var b strings.Builder
	for _, s := range c.Elements() {
		b.WriteString(s)
		if amt := c.amounts[s]; math.Abs(amt-1) > utils.AmountTolerance {
			b.WriteString(utils.FormatAmount(amt))
		}
	}
	return b.String()
}

// Reduced returns the composition with amounts in lowest ratio.
func (c Composition) Reduced() Composition {
	return Composition{
		amounts: reduceAmounts(c.amounts),
		table:   c.table,
		order:   c.order,
	}
}

// ReducedFormula renders the reduced composition, e.g. "Ba2Ti2O6" → "BaTiO3".
func (c Composition) ReducedFormula() string {
	return c.Reduced().Formula()
}

// Key is the ordering independent identity of the reduced composition:
// two compositions share a key exactly when their element ratios match.
func (c Composition) Key() string {
	r := c.Reduced()
	r.order = OrderAlphabetical
	return r.Formula()
}

// Equal reports whether c and o have the same element ratios.
func (c Composition) Equal(o Composition) bool {
	a, b := reduceAmounts(c.amounts), reduceAmounts(o.amounts)
	if len(a) != len(b) {
		return false
	}
	for s, v := range a {
		w, ok := b[s]
		if !ok || math.Abs(v-w) > equalTolerance {
			return false
		}
	}
	return true
}

func (c Composition) String() string { return c.Formula() }

// reduceAmounts divides integral amounts by their GCD. Fractional amounts are
// divided by the minimum amount, "Fe0.5O0.75" → "FeO1.5"; when that makes
// every amount integral they are GCD reduced as well.
func reduceAmounts(amounts map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(amounts))
	if len(amounts) == 0 {
		return out
	}

	if ints, ok := integral(amounts, 1, utils.AmountTolerance); ok {
		return divideByGCD(ints)
	}

	minAmt, maxAmt := math.Inf(1), 0.0
	for _, v := range amounts {
		minAmt = math.Min(minAmt, v)
		maxAmt = math.Max(maxAmt, v)
	}
	if maxAmt/minAmt > utils.MaxAmount {
		// scaling would leave the parseable range, keep the amounts as given
		for s, v := range amounts {
			out[s] = v
		}
		return out
	}
	scaled := make(map[string]float64, len(amounts))
	for s, v := range amounts {
		scaled[s] = v / minAmt
	}

	if ints, ok := integral(scaled, 1, scaledTolerance); ok {
		return divideByGCD(ints)
	}
	return scaled
}

// integral returns amounts scaled by factor as integers, false when any of
// them is not near an integer in [1, utils.MaxAmount].
func integral(amounts map[string]float64, factor, tol float64) (map[string]int64, bool) {
	ints := make(map[string]int64, len(amounts))
	for s, v := range amounts {
		x := v * factor
		if !utils.IsNearInt(x, tol) || math.Round(x) < 1 || x > utils.MaxAmount {
			return nil, false
		}
		ints[s] = int64(math.Round(x))
	}
	return ints, true
}

func divideByGCD(ints map[string]int64) map[string]float64 {
	vals := make([]int64, 0, len(ints))
	for _, v := range ints {
		vals = append(vals, v)
	}
	g := utils.GCDAll(vals...)
	out := make(map[string]float64, len(ints))
	for s, v := range ints {
		out[s] = float64(v / g)
	}
	return out
}
