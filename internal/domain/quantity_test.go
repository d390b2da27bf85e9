package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantityRejectsNegative(t *testing.T) {
	_, err := NewQuantity(decimal.NewFromInt(-1), UnitBottles)
	require.Error(t, err)

	var invalid *InvalidQuantityError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Error(), "cannot be negative")
}

func TestQuantityAdd(t *testing.T) {
	a := MustQuantity(2.5, UnitLiters)
	b := MustQuantity(1.25, UnitLiters)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "3.75 liters", sum.String())

	// operands are untouched
	assert.Equal(t, "2.50 liters", a.String())
}

func TestQuantitySub(t *testing.T) {
	a := MustQuantity(10, UnitBottles)
	b := MustQuantity(4, UnitBottles)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "6.00 bottles", diff.String())
}

func TestQuantitySubUnderflow(t *testing.T) {
	a := MustQuantity(3, UnitBottles)
	b := MustQuantity(5, UnitBottles)

	_, err := a.Sub(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would result in negative quantity")
}

func TestQuantityUnitMismatch(t *testing.T) {
	liters := MustQuantity(1, UnitLiters)
	bottles := MustQuantity(1, UnitBottles)

	_, err := liters.Add(bottles)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different units")

	_, err = liters.Cmp(bottles)
	require.Error(t, err)
}

func TestQuantityComparisons(t *testing.T) {
	four := MustQuantity(4, UnitLiters)
	five := MustQuantity(5, UnitLiters)

	le, err := four.LessThanOrEqual(five)
	require.NoError(t, err)
	assert.True(t, le)

	le, err = five.LessThanOrEqual(five)
	require.NoError(t, err)
	assert.True(t, le)

	gt, err := five.GreaterThan(four)
	require.NoError(t, err)
	assert.True(t, gt)
}

func TestZeroQuantity(t *testing.T) {
	z := ZeroQuantity(UnitKilograms)
	assert.True(t, z.IsZero())
	assert.Equal(t, "0.00 kg", z.String())
}
