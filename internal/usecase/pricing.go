package usecase

import (
	"math"
	"strings"

	"github.com/molivares/tiendasim/internal/domain"
)

// OfferTable mapea id de producto a fracción de descuento en (0,1].
type OfferTable map[string]float64

// DefaultOffers replica la tabla estática de ofertas de la tienda.
func DefaultOffers() OfferTable {
	return OfferTable{
		"p-1002": 0.5,  // Smartwatch
		"p-1007": 0.3,  // Ratón Razer
		"p-1008": 0.15, // MacBook M4
	}
}

// Cupones reconocidos. ENVIOGRATIS no descuenta plata: anula el envío y
// se resuelve en ComputeTotals.
const (
	CouponValida10    = "VALIDA10"
	Coupon50Off       = "50OFF"
	CouponFreeShip    = "ENVIOGRATIS"
	shippingZoneNear  = 4.99
	shippingZoneOther = 7.99
)

// round2 redondea al centavo, mitad lejos de cero. Se aplica en cada
// paso donde el monto se muestra, para que el drift de float64 no se
// acumule entre renders.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (t OfferTable) DiscountFor(p domain.Product) float64 {
	return t[p.ID]
}

// EffectivePrice es el precio tras la oferta estática del producto.
func (t OfferTable) EffectivePrice(p domain.Product) float64 {
	d := t.DiscountFor(p)
	if d == 0 {
		return p.Price
	}
	return round2(p.Price * (1 - d))
}

// NormalizeCoupon deja el código como se compara y se persiste.
func NormalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CouponDiscount devuelve el descuento monetario del cupón sobre el
// subtotal. Un código desconocido no es un error: descuenta 0 y el que
// llama decide si avisar.
func CouponDiscount(code string, subtotal float64) float64 {
	switch NormalizeCoupon(code) {
	case CouponValida10:
		return round2(subtotal * 0.10)
	case Coupon50Off:
		return round2(subtotal * 0.50)
	}
	return 0
}

// CouponRecognized indica si el código produce algún efecto (descuento o
// envío gratis).
func CouponRecognized(code string) bool {
	c := NormalizeCoupon(code)
	return c == CouponFreeShip || CouponDiscount(c, 100) > 0
}

// ShippingCostFor usa una tabla de zonas simplificada a propósito: no es
// geolocalización real. Código postal vacío significa envío sin calcular.
func ShippingCostFor(zip string) float64 {
	z := strings.TrimSpace(zip)
	if z == "" {
		return 0
	}
	if strings.HasPrefix(z, "1") {
		return shippingZoneNear
	}
	return shippingZoneOther
}

// ComputeTotals deriva los totales del carrito con las preferencias
// actuales. O(n) sobre las líneas, sin efectos.
func ComputeTotals(lines []domain.CartLine, prefs domain.Preferences, offers OfferTable) domain.CartTotals {
	var count int
	var subtotal float64
	for _, l := range lines {
		count += l.Qty
		subtotal += float64(l.Qty) * offers.EffectivePrice(l.Product)
	}
	subtotal = round2(subtotal)

	discount := CouponDiscount(prefs.CouponApplied, subtotal)
	shipping := prefs.ShippingCost
	if NormalizeCoupon(prefs.CouponApplied) == CouponFreeShip {
		shipping = 0
	}
	total := round2(subtotal - discount + shipping)
	if total < 0 {
		total = 0
	}
	return domain.CartTotals{
		ItemsCount: count,
		Subtotal:   subtotal,
		Discount:   discount,
		Shipping:   shipping,
		Total:      total,
	}
}
