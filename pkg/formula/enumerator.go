package formula

import (
	"iter"
	"slices"
	"sync"

	"github.com/hankgalt/design-space/pkg/domain"
	"github.com/hankgalt/design-space/pkg/utils"
)

// Enumerator parses, reduces & screens formulas against an element table.
// The zero value is not usable, build one with NewEnumerator.
type Enumerator struct {
	table *ElementTable
	order Order
}

type Option func(*Enumerator)

// WithElementTable replaces the embedded periodic table.
func WithElementTable(t *ElementTable) Option {
	return func(e *Enumerator) {
		if t != nil {
			e.table = t
		}
	}
}

// WithOrder sets the element ordering of rendered formulas.
func WithOrder(o Order) Option {
	return func(e *Enumerator) { e.order = o }
}

func NewEnumerator(opts ...Option) *Enumerator {
	e := &Enumerator{
		table: DefaultElementTable(),
		order: OrderElectronegativity,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse tokenizes formula into a Composition. Symbols are matched greedily,
// longest first, so "BaO" is Ba + O and never B + "aO". Each symbol may be
// followed by an integer or decimal amount; repeated symbols accumulate.
func (e *Enumerator) Parse(formula string) (Composition, error) {
	if formula == "" {
		return Composition{}, &ParseError{Formula: formula, Pos: 0, Reason: "empty formula"}
	}

	amounts := map[string]float64{}
	pos := 0
	for pos < len(formula) {
		sym, ok := e.matchSymbol(formula, pos)
		if !ok {
			return Composition{}, &ParseError{Formula: formula, Pos: pos, Reason: "unknown element symbol"}
		}
		pos += len(sym)

		end := pos
		for end < len(formula) && (isDigit(formula[end]) || formula[end] == '.') {
			end++
		}

		amt := 1.0
		if end > pos {
			v, err := utils.ParseAmount(formula[pos:end])
			if err != nil {
				return Composition{}, &ParseError{Formula: formula, Pos: pos, Reason: err.Error()}
			}
			amt = v
		}
		amounts[sym] += amt
		if amounts[sym] > utils.MaxAmount {
			return Composition{}, &ParseError{Formula: formula, Pos: pos, Reason: utils.ERR_AMOUNT_TOO_LARGE}
		}
		pos = end
	}

	return Composition{amounts: amounts, table: e.table, order: e.order}, nil
}

// ReducedFormula parses formula and renders its reduced form.
func (e *Enumerator) ReducedFormula(formula string) (string, error) {
	c, err := e.Parse(formula)
	if err != nil {
		return "", err
	}
	return c.ReducedFormula(), nil
}

// ScreenCompositions reduces each candidate and keeps the first occurrence of
// every composition, in input order. The first parse failure aborts the run.
func (e *Enumerator) ScreenCompositions(candidates iter.Seq[string]) ([]Composition, error) {
	seen := domain.NewOrderedSet[string]()
	out := []Composition{}
	for cand := range candidates {
		c, err := e.Parse(cand)
		if err != nil {
			return nil, err
		}
		if seen.Insert(c.Key()) {
			out = append(out, c.Reduced())
		}
	}
	return out, nil
}

// Screen is ScreenCompositions rendered as reduced formulas.
func (e *Enumerator) Screen(candidates iter.Seq[string]) ([]string, error) {
	comps, err := e.ScreenCompositions(candidates)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = c.Formula()
	}
	return out, nil
}

// EnumerateCompositions screens every arity-combination of elements.
func (e *Enumerator) EnumerateCompositions(elements []string, arity int) ([]Composition, error) {
	seq, err := Candidates(elements, arity)
	if err != nil {
		return nil, err
	}
	return e.ScreenCompositions(seq)
}

// EnumerateUniqueFormulas returns the unique reduced formulas built from
// every arity-combination of elements, in first-seen order.
func (e *Enumerator) EnumerateUniqueFormulas(elements []string, arity int) ([]string, error) {
	seq, err := Candidates(elements, arity)
	if err != nil {
		return nil, err
	}
	return e.Screen(seq)
}

func (e *Enumerator) matchSymbol(formula string, pos int) (string, bool) {
	for _, n := range []int{2, 1} {
		if pos+n > len(formula) {
			continue
		}
		if _, ok := e.table.Lookup(formula[pos : pos+n]); ok {
			return formula[pos : pos+n], true
		}
	}
	return "", false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

var defaultEnumerator = sync.OnceValue(func() *Enumerator { return NewEnumerator() })

// Parse parses formula with the default enumerator.
func Parse(formula string) (Composition, error) {
	return defaultEnumerator().Parse(formula)
}

// ReducedFormula reduces formula with the default enumerator.
func ReducedFormula(formula string) (string, error) {
	return defaultEnumerator().ReducedFormula(formula)
}

// Screen screens candidates with the default enumerator.
func Screen(candidates []string) ([]string, error) {
	return defaultEnumerator().Screen(slices.Values(candidates))
}

// EnumerateUniqueFormulas enumerates with the default enumerator:
//
//	EnumerateUniqueFormulas([]string{"Ba", "Ti", "O"}, 2) // ["BaTi", "BaO", "TiO"]
func EnumerateUniqueFormulas(elements []string, arity int) ([]string, error) {
	return defaultEnumerator().EnumerateUniqueFormulas(elements, arity)
}
