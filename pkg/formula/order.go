package formula

import (
	"cmp"
	"fmt"
	"strings"
)

// Order selects how elements are arranged in a rendered formula.
type Order int

const (
	OrderElectronegativity Order = iota
	OrderAlphabetical
)

func (o Order) String() string {
	switch o {
	case OrderElectronegativity:
		return "electronegativity"
	case OrderAlphabetical:
		return "alphabetical"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps a name to an Order. The empty string selects the default.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "electronegativity", "en":
		return OrderElectronegativity, nil
	case "alphabetical", "alpha":
		return OrderAlphabetical, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}

// compare returns the sort comparison of two symbols under o.
func (o Order) compare(t *ElementTable, a, b string) int {
	if o == OrderElectronegativity {
		ea, _ := t.Lookup(a)
		eb, _ := t.Lookup(b)
		switch {
		case ea.Electronegativity == 0 && eb.Electronegativity != 0:
			return 1
		case ea.Electronegativity != 0 && eb.Electronegativity == 0:
			return -1
		}
		if c := cmp.Compare(ea.Electronegativity, eb.Electronegativity); c != 0 {
			return c
		}
	}
	return cmp.Compare(a, b)
}
