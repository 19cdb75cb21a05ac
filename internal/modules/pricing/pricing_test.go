package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlat_Quote_LinearSubtotal(t *testing.T) {
	p := Flat{InsideFee: 60, OutsideFee: 120}

	q, err := p.Quote([]Line{
		{UnitPrice: 550, Quantity: 2},
		{UnitPrice: 300, Quantity: 1},
	}, AreaInside)

	require.NoError(t, err)
	assert.Equal(t, 1400.0, q.Subtotal)
	assert.Equal(t, 60.0, q.DeliveryCharge)
	assert.Equal(t, 1460.0, q.Total)
}

func TestFlat_Quote_OutsideFee(t *testing.T) {
	p := Flat{InsideFee: 60, OutsideFee: 120}

	q, err := p.Quote([]Line{{UnitPrice: 100, Quantity: 1}}, AreaOutside)

	require.NoError(t, err)
	assert.Equal(t, 120.0, q.DeliveryCharge)
	assert.Equal(t, 220.0, q.Total)
}

func TestFlat_Quote_AreaRequired(t *testing.T) {
	p := Flat{InsideFee: 60, OutsideFee: 120}

	_, err := p.Quote([]Line{{UnitPrice: 100, Quantity: 1}}, AreaUnset)
	assert.ErrorIs(t, err, ErrAreaRequired)

	_, err = p.Quote([]Line{{UnitPrice: 100, Quantity: 1}}, Area("dhaka"))
	assert.ErrorIs(t, err, ErrUnknownArea)
}

func TestFlat_Quote_AssumeInsideLegacyBrand(t *testing.T) {
	p := Flat{InsideFee: 60, OutsideFee: 120, AssumeInside: true}

	q, err := p.Quote([]Line{{UnitPrice: 100, Quantity: 1}}, AreaUnset)

	require.NoError(t, err)
	assert.Equal(t, 60.0, q.DeliveryCharge)
}

func TestFlat_Quote_EmptyCart(t *testing.T) {
	p := Flat{InsideFee: 60, OutsideFee: 120}

	q, err := p.Quote(nil, AreaUnset)

	require.NoError(t, err)
	assert.Equal(t, Quote{}, q, "empty carts are blocked upstream, never priced")
}

func TestFlat_Quote_FreeDeliverySubtotalBoundary(t *testing.T) {
	p := Flat{InsideFee: 60, OutsideFee: 120, Free: MinSubtotal(1000)}

	at, err := p.Quote([]Line{{UnitPrice: 1000, Quantity: 1}}, AreaOutside)
	require.NoError(t, err)
	assert.Equal(t, 0.0, at.DeliveryCharge, "exactly at threshold qualifies")
	assert.Equal(t, 1000.0, at.Total)

	below, err := p.Quote([]Line{{UnitPrice: 999, Quantity: 1}}, AreaOutside)
	require.NoError(t, err)
	assert.Equal(t, 120.0, below.DeliveryCharge, "one taka below does not")
}

func TestFreeDelivery_MinUnitsBoundary(t *testing.T) {
	free := MinUnits(3)

	assert.True(t, free([]Line{{Quantity: 3}}, 0))
	assert.True(t, free([]Line{{Quantity: 2}, {Quantity: 1}}, 0))
	assert.False(t, free([]Line{{Quantity: 2}}, 0))
	assert.False(t, free([]Line{{Quantity: 5, IsPack: true}}, 0), "pack units do not count")
}

func TestFreeDelivery_AnyPack(t *testing.T) {
	free := AnyPack()

	assert.True(t, free([]Line{{Quantity: 1}, {Quantity: 1, IsPack: true}}, 0))
	assert.False(t, free([]Line{{Quantity: 4}}, 0))
}

func TestFreeDelivery_MinWeight(t *testing.T) {
	free := MinWeight(2000)

	assert.True(t, free([]Line{{Quantity: 2, WeightGrams: 1000}}, 0))
	assert.False(t, free([]Line{{Quantity: 1, WeightGrams: 1000}}, 0))
}

func TestStepTable_Quote_BundlePricing(t *testing.T) {
	// 1 = 550, any 2 = 1000, any 3 = 1400, repeating per group of 3.
	p := StepTable{
		GroupSize:  3,
		Prices:     []float64{550, 1000, 1400},
		InsideFee:  60,
		OutsideFee: 120,
	}

	tests := []struct {
		qty  int
		want float64
	}{
		{1, 550},
		{2, 1000},
		{3, 1400}, // flat bundle price, not 3×550
		{4, 1950},
		{5, 2400},
		{6, 2800},
		{7, 3350},
	}
	for _, tt := range tests {
		q, err := p.Quote([]Line{{UnitPrice: 550, Quantity: tt.qty}}, AreaInside)
		require.NoError(t, err)
		assert.Equal(t, tt.want, q.Subtotal, "qty %d", tt.qty)
	}
}

func TestStepTable_Quote_PackLinesBypassTable(t *testing.T) {
	p := StepTable{GroupSize: 3, Prices: []float64{550, 1000, 1400}, InsideFee: 60, OutsideFee: 120, Free: AnyPack()}

	q, err := p.Quote([]Line{
		{UnitPrice: 550, Quantity: 2},
		{UnitPrice: 1300, Quantity: 1, IsPack: true},
	}, AreaOutside)

	require.NoError(t, err)
	assert.Equal(t, 2300.0, q.Subtotal, "pack sells at its own flat price")
	assert.Equal(t, 0.0, q.DeliveryCharge, "any pack in the cart waives delivery")
	assert.Equal(t, 2300.0, q.Total)
}

func TestStepTable_Quote_Misconfigured(t *testing.T) {
	p := StepTable{GroupSize: 3, Prices: []float64{550}}

	_, err := p.Quote([]Line{{Quantity: 1}}, AreaInside)
	assert.Error(t, err)
}

func TestQuote_TotalIsSubtotalPlusDelivery(t *testing.T) {
	p := Flat{InsideFee: 70, OutsideFee: 130, Free: MinSubtotal(2000)}

	for _, area := range []Area{AreaInside, AreaOutside} {
		for _, qty := range []int{1, 3, 10, 25} {
			q, err := p.Quote([]Line{{UnitPrice: 99, Quantity: qty}}, area)
			require.NoError(t, err)
			assert.Equal(t, q.Subtotal+q.DeliveryCharge, q.Total)
		}
	}
}

func TestRegistry_For(t *testing.T) {
	fallback := Flat{InsideFee: 60, OutsideFee: 120}
	r := NewRegistry(fallback)
	step := StepTable{GroupSize: 3, Prices: []float64{550, 1000, 1400}}
	r.Register("rupkotha", step)

	assert.Equal(t, Policy(step), r.For("rupkotha"))
	assert.Equal(t, Policy(fallback), r.For("unknown-brand"))
}
