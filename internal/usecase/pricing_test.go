package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molivares/tiendasim/internal/domain"
)

func TestEffectivePriceNeverExceedsListPrice(t *testing.T) {
	offers := OfferTable{"p-1": 0.5, "p-2": 0.15}
	products := []domain.Product{
		{ID: "p-1", Price: 89.9},
		{ID: "p-2", Price: 1599},
		{ID: "p-3", Price: 24.5}, // sin oferta
		{ID: "p-4", Price: 0},
	}
	for _, p := range products {
		eff := offers.EffectivePrice(p)
		assert.LessOrEqual(t, eff, p.Price, "producto %s", p.ID)
		if offers.DiscountFor(p) == 0 {
			assert.Equal(t, p.Price, eff)
		} else {
			assert.Less(t, eff, p.Price)
		}
	}
}

func TestEffectivePriceRoundsToCents(t *testing.T) {
	offers := OfferTable{"p-1": 0.3, "p-2": 0.15}
	// 19.99 * 0.7 = 13.993 -> 13.99
	assert.Equal(t, 13.99, offers.EffectivePrice(domain.Product{ID: "p-1", Price: 19.99}))
	// 1599 * 0.85 = 1359.15
	assert.Equal(t, 1359.15, offers.EffectivePrice(domain.Product{ID: "p-2", Price: 1599}))
}

func TestCouponDiscount(t *testing.T) {
	cases := []struct {
		code string
		want float64
	}{
		{"VALIDA10", 10.00},
		{"valida10", 10.00},
		{"  50off  ", 50.00},
		{"ENVIOGRATIS", 0},
		{"NADA", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CouponDiscount(tc.code, 100.00), "cupón %q", tc.code)
	}
}

func TestCouponRecognized(t *testing.T) {
	assert.True(t, CouponRecognized("VALIDA10"))
	assert.True(t, CouponRecognized(" enviogratis "))
	assert.False(t, CouponRecognized("OTRO"))
	assert.False(t, CouponRecognized(""))
}

func TestShippingCostFor(t *testing.T) {
	assert.Equal(t, 0.0, ShippingCostFor(""))
	assert.Equal(t, 0.0, ShippingCostFor("   "))
	assert.Equal(t, 4.99, ShippingCostFor("1000"))
	assert.Equal(t, 4.99, ShippingCostFor(" 1428 "))
	assert.Equal(t, 7.99, ShippingCostFor("5000"))
}

func lineasDePrueba() []domain.CartLine {
	return []domain.CartLine{
		{Product: domain.Product{ID: "p-1", Price: 40, Stock: 10}, Qty: 2},
		{Product: domain.Product{ID: "p-2", Price: 10, Stock: 10}, Qty: 1},
	}
}

func TestComputeTotals(t *testing.T) {
	prefs := domain.DefaultPreferences()
	totals := ComputeTotals(lineasDePrueba(), prefs, OfferTable{})

	assert.Equal(t, 3, totals.ItemsCount)
	assert.Equal(t, 90.00, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 90.00, totals.Total)
}

func TestComputeTotalsWithCouponAndShipping(t *testing.T) {
	prefs := domain.DefaultPreferences()
	prefs.CouponApplied = "VALIDA10"
	prefs.ShippingZip = "5000"
	prefs.ShippingCost = 7.99

	totals := ComputeTotals(lineasDePrueba(), prefs, OfferTable{})
	assert.Equal(t, 90.00, totals.Subtotal)
	assert.Equal(t, 9.00, totals.Discount)
	assert.Equal(t, 7.99, totals.Shipping)
	assert.Equal(t, 88.99, totals.Total)
}

func TestComputeTotalsFreeShippingCoupon(t *testing.T) {
	prefs := domain.DefaultPreferences()
	prefs.CouponApplied = "ENVIOGRATIS"
	prefs.ShippingCost = 7.99 // el cupón lo anula sin importar el CP

	totals := ComputeTotals(lineasDePrueba(), prefs, OfferTable{})
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.Equal(t, 90.00, totals.Total)
}

func TestComputeTotalsUsesEffectivePrices(t *testing.T) {
	offers := OfferTable{"p-1": 0.5}
	totals := ComputeTotals(lineasDePrueba(), domain.DefaultPreferences(), offers)
	// p-1 a mitad de precio: 2*20 + 1*10
	assert.Equal(t, 50.00, totals.Subtotal)
}

func TestComputeTotalsNeverNegative(t *testing.T) {
	lines := []domain.CartLine{{Product: domain.Product{ID: "p-1", Price: 1, Stock: 5}, Qty: 1}}
	prefs := domain.DefaultPreferences()
	prefs.CouponApplied = "50OFF"
	totals := ComputeTotals(lines, prefs, OfferTable{})
	assert.GreaterOrEqual(t, totals.Total, 0.0)
}

func TestComputeTotalsMonotonicInQuantity(t *testing.T) {
	prefs := domain.DefaultPreferences()
	prefs.CouponApplied = "VALIDA10"
	prefs.ShippingCost = 4.99

	prev := -1.0
	for qty := 1; qty <= 10; qty++ {
		lines := []domain.CartLine{{Product: domain.Product{ID: "p-1", Price: 13.37, Stock: 99}, Qty: qty}}
		totals := ComputeTotals(lines, prefs, OfferTable{})
		require.Greater(t, totals.Subtotal, prev, "qty %d", qty)
		prev = totals.Subtotal
	}
}
