package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hankgalt/design-space/pkg/utils"
)

func TestGCD(t *testing.T) {
	require.Equal(t, 4, utils.GCD(8, 12))
	require.Equal(t, 1, utils.GCD(7, 3))
	require.Equal(t, 5, utils.GCD(-5, 0))
	require.Equal(t, int64(3), utils.GCDAll[int64](9, 6, 3))
	require.Equal(t, 0, utils.GCDAll[int]())
}

func TestParseAmount(t *testing.T) {
	v, err := utils.ParseAmount("2")
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	v, err = utils.ParseAmount(" 0.75 ")
	require.NoError(t, err)
	require.Equal(t, 0.75, v)

	_, err = utils.ParseAmount("")
	require.ErrorIs(t, err, utils.ErrEmptyString)

	_, err = utils.ParseAmount("x")
	require.ErrorIs(t, err, utils.ErrInvalidAmount)

	_, err = utils.ParseAmount("0")
	require.ErrorIs(t, err, utils.ErrNegativeAmount)

	v, err = utils.ParseAmount("1000000000000000")
	require.NoError(t, err)
	require.Equal(t, utils.MaxAmount, v)

	_, err = utils.ParseAmount("10000000000000000000")
	require.ErrorIs(t, err, utils.ErrAmountTooLarge)
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "2", utils.FormatAmount(2))
	require.Equal(t, "3", utils.FormatAmount(2.9999999999))
	require.Equal(t, "0.5", utils.FormatAmount(0.5))
	require.Equal(t, "0.66666667", utils.FormatAmount(2.0/3.0))
	require.Equal(t, "10000000000000000000", utils.FormatAmount(1e19))
	require.True(t, utils.IsNearInt(4.00000000001, utils.AmountTolerance))
	require.False(t, utils.IsNearInt(4.1, utils.AmountTolerance))
}
