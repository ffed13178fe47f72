package tools

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	require.Equal(t, 66.67, Round2(200.0/3))
	require.Equal(t, 0.13, Round2(0.125))
	require.Equal(t, -0.13, Round2(-0.125))
	require.Equal(t, 62.5, Round2(62.5))
	require.Equal(t, 0.0, Round2(math.NaN()))
}

func TestPercentZeroDenominator(t *testing.T) {
	require.Equal(t, 0.0, Percent(0, 0))
	require.Equal(t, 0.0, Percent(5, 0))
	require.Equal(t, 70.0, Percent(7, 10))
	require.Equal(t, 62.5, Percent(5, 8))
	require.Equal(t, 33.33, Percent(1, 3))
}

func TestMean(t *testing.T) {
	require.Equal(t, 0.0, Mean(0, 0))
	require.Equal(t, 4.33, Mean(13, 3))
	require.Equal(t, 4.5, Mean(9, 2))
}

func TestPassword(t *testing.T) {
	hash := PasswordEncrypt("s3cret!pw")
	require.NotEqual(t, "s3cret!pw", hash)
	require.True(t, PasswordCompare("s3cret!pw", hash))
	require.False(t, PasswordCompare("wrong", hash))
}
