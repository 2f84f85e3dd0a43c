package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCharge(t *testing.T) {
	tests := []struct {
		name         string
		basePrice    int64
		discount     int
		wantFinal    int64
		wantDiscount int64
	}{
		{"无折扣", 10000, 0, 10000, 0},
		{"25%折扣", 10000, 25, 7500, 2500},
		{"全额折扣", 10000, 100, 0, 10000},
		{"零元票", 0, 50, 0, 0},
		{"半分向上取整", 9999, 25, 7499, 2500},
		{"1%折扣", 10000, 1, 9900, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, discount, err := ComputeCharge(tt.basePrice, tt.discount)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFinal, final)
			assert.Equal(t, tt.wantDiscount, discount)
			assert.Equal(t, tt.basePrice, final+discount)
		})
	}
}

func TestComputeChargeInvalid(t *testing.T) {
	_, _, err := ComputeCharge(10000, -1)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, _, err = ComputeCharge(10000, 101)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, _, err = ComputeCharge(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidBasePrice)
}

// 折扣越大实付越少，且任意折扣下实付不超过原价
func TestComputeChargeMonotonic(t *testing.T) {
	prev := int64(10001)
	for pct := 0; pct <= 100; pct++ {
		final, _, err := ComputeCharge(10000, pct)
		require.NoError(t, err)
		assert.LessOrEqual(t, final, prev, "discount=%d", pct)
		assert.GreaterOrEqual(t, final, int64(0))
		prev = final
	}
}
