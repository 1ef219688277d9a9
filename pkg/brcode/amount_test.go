package brcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "7.00", FormatAmount(700))
	assert.Equal(t, "1234.50", FormatAmount(123450))
	assert.Equal(t, "0.10", FormatAmount(10))
	assert.Equal(t, "0.01", FormatAmount(1))
}

func TestAmountToCents(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{7, 700},
		{0.1, 10},
		{25.5, 2550},
		{19.99, 1999},
	}

	for _, tt := range tests {
		cents, err := AmountToCents(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, cents, "amount %v", tt.in)
	}
}

func TestAmountToCents_Rejects(t *testing.T) {
	for _, in := range []float64{0, -1, 0.001, math.NaN(), math.Inf(1)} {
		_, err := AmountToCents(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", in)
	}
}

func TestCentsToAmount(t *testing.T) {
	assert.Equal(t, 25.5, CentsToAmount(2550))
}
