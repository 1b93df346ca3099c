package formula_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hankgalt/design-space/pkg/formula"
)

func TestDefaultElementTable(t *testing.T) {
	table := formula.DefaultElementTable()
	require.Equal(t, 118, table.Len())

	ba, ok := table.Lookup("Ba")
	require.True(t, ok)
	require.Equal(t, 56, ba.Number)
	require.InDelta(t, 0.89, ba.Electronegativity, 1e-9)

	he, ok := table.Lookup("He")
	require.True(t, ok)
	require.Zero(t, he.Electronegativity)

	_, ok = table.Lookup("Xx")
	require.False(t, ok)
}

func TestReadElementTable(t *testing.T) {
	table, err := formula.ReadElementTable(strings.NewReader("symbol,number,electronegativity\nBa,56,0.89\nO,8,3.44\n"))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	_, err = formula.ReadElementTable(strings.NewReader("symbol,number,electronegativity\n"))
	require.ErrorIs(t, err, formula.ErrInvalidTable)

	_, err = formula.ReadElementTable(strings.NewReader("symbol,number,electronegativity\nBa,x,0.89\n"))
	require.ErrorIs(t, err, formula.ErrInvalidTable)

	_, err = formula.ReadElementTable(strings.NewReader("symbol,number,electronegativity\nBa,56,0.89\nBa,56,0.89\n"))
	require.ErrorIs(t, err, formula.ErrInvalidTable)
}

func TestNewElementTable_BadSymbols(t *testing.T) {
	for _, sym := range []string{"", "ba", "BA", "Bau", "1"} {
		_, err := formula.NewElementTable([]formula.Element{{Symbol: sym, Number: 1}})
		require.ErrorIs(t, err, formula.ErrInvalidTable, sym)
	}

	_, err := formula.NewElementTable(nil)
	require.ErrorIs(t, err, formula.ErrInvalidTable)
}
