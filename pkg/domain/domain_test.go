package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hankgalt/design-space/pkg/domain"
)

func TestOrderedSet(t *testing.T) {
	s := domain.NewOrderedSet("BaO", "BaTi", "BaO")
	require.True(t, s.Insert("TiO"))
	require.False(t, s.Insert("BaO"))
	require.False(t, s.Insert("BaTi"))

	s.Add("TiO", "SrO")
	require.False(t, s.Insert("SrO"))
	require.True(t, s.Insert("OBa"))
}
