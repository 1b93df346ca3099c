package formula

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

//go:embed data/elements.csv
var elementsCSV string

// Element is one entry of the element-symbol whitelist.
type Element struct {
	Symbol            string
	Number            int
	Electronegativity float64 // Pauling scale, 0 when undefined (noble gases, superheavies)
}

// ElementTable is the set of symbols the parser accepts.
type ElementTable struct {
	bySymbol map[string]Element
}

var (
	defaultTable     *ElementTable
	defaultTableOnce sync.Once
)

// DefaultElementTable returns the embedded periodic table (H..Og).
func DefaultElementTable() *ElementTable {
	defaultTableOnce.Do(func() {
		t, err := ReadElementTable(strings.NewReader(elementsCSV))
		if err != nil {
			panic(fmt.Sprintf("formula: embedded element table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// NewElementTable builds a table from elements. Symbols must be one or two
// letters, an upper case letter optionally followed by a lower case one, and unique.
func NewElementTable(elements []Element) (*ElementTable, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: no elements", ErrInvalidTable)
	}

	t := &ElementTable{bySymbol: make(map[string]Element, len(elements))}
	for _, el := range elements {
		if !validSymbol(el.Symbol) {
			return nil, fmt.Errorf("%w: bad symbol %q", ErrInvalidTable, el.Symbol)
		}
		if _, ok := t.bySymbol[el.Symbol]; ok {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidTable, el.Symbol)
		}
		if el.Electronegativity < 0 {
			return nil, fmt.Errorf("%w: negative electronegativity for %q", ErrInvalidTable, el.Symbol)
		}
		t.bySymbol[el.Symbol] = el
	}
	return t, nil
}

// ReadElementTable reads a CSV table with header "symbol,number,electronegativity".
// An empty electronegativity cell means undefined.
func ReadElementTable(r io.Reader) (*ElementTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: no elements", ErrInvalidTable)
	}

	elements := make([]Element, 0, len(rows)-1)
	for i, row := range rows[1:] {
		num, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: atomic number: %w", ErrInvalidTable, i+2, err)
		}
		var en float64
		if v := strings.TrimSpace(row[2]); v != "" {
			en, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: electronegativity: %w", ErrInvalidTable, i+2, err)
			}
		}
		elements = append(elements, Element{
			Symbol:            strings.TrimSpace(row[0]),
			Number:            num,
			Electronegativity: en,
		})
	}
	return NewElementTable(elements)
}

// Lookup returns the element for symbol.
func (t *ElementTable) Lookup(symbol string) (Element, bool) {
	el, ok := t.bySymbol[symbol]
	return el, ok
}

// Len returns the number of symbols in the table.
func (t *ElementTable) Len() int { return len(t.bySymbol) }

func validSymbol(s string) bool {
	r := []rune(s)
	switch len(r) {
	case 1:
		return unicode.IsUpper(r[0])
	case 2:
		return unicode.IsUpper(r[0]) && unicode.IsLower(r[1])
	}
	return false
}
