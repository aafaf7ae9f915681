package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/molivares/tiendasim/internal/domain"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// DefaultCheckoutDelay imita la demora del procesamiento de pago
// simulado de la tienda original.
const DefaultCheckoutDelay = 1400 * time.Millisecond

// CheckoutUC arma el flujo de compra simulada: contacto → dirección →
// pago → confirmación. No hay backend de pago; la confirmación es una
// espera fija más un comprobante.
type CheckoutUC struct {
	Store  *StoreUC
	Orders domain.OrderRepo // opcional, archiva el comprobante
	Delay  time.Duration
}

const (
	stepContact = iota
	stepAddress
	stepPayment
	stepConfirm
)

// CheckoutFlow junta los datos paso a paso. Los pasos son estrictamente
// ordenados; Cancel en cualquier punto descarta lo juntado y deja el
// carrito intacto. El flow no es seguro para uso concurrente: pertenece
// a una sola sesión de compra.
type CheckoutFlow struct {
	uc   *CheckoutUC
	step int
	done bool

	name    string
	email   string
	address string
	city    string
	payment domain.PaymentMethod
}

// Begin abre un flujo nuevo; falla con ErrEmptyCart si no hay líneas.
func (uc *CheckoutUC) Begin() (*CheckoutFlow, error) {
	if len(uc.Store.Lines()) == 0 {
		return nil, domain.ErrEmptyCart
	}
	return &CheckoutFlow{uc: uc}, nil
}

func (f *CheckoutFlow) guard(step int) error {
	if f.done {
		return domain.ErrFlowDone
	}
	if f.step != step {
		return domain.ErrFlowOrder
	}
	return nil
}

func (f *CheckoutFlow) SubmitContact(name, email string) error {
	if err := f.guard(stepContact); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return errors.New("nombre vacío")
	}
	if !emailRe.MatchString(email) {
		return errors.New("email inválido")
	}
	f.name, f.email = name, email
	f.step = stepAddress
	return nil
}

func (f *CheckoutFlow) SubmitAddress(street, city string) error {
	if err := f.guard(stepAddress); err != nil {
		return err
	}
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	if street == "" || city == "" {
		return errors.New("dirección incompleta")
	}
	f.address, f.city = street, city
	f.step = stepPayment
	return nil
}

func (f *CheckoutFlow) SubmitPayment(method string) error {
	if err := f.guard(stepPayment); err != nil {
		return err
	}
	m := domain.PaymentMethod(strings.TrimSpace(strings.ToLower(method)))
	if !m.Valid() {
		return errors.New("método de pago inválido")
	}
	f.payment = m
	f.step = stepConfirm
	return nil
}

// Cancel abandona el flujo en cualquier paso. Los datos juntados se
// descartan; el carrito no se toca.
func (f *CheckoutFlow) Cancel() {
	*f = CheckoutFlow{uc: f.uc, done: true}
}

// Confirm ejecuta la espera simulada de pago, arma el comprobante y
// recién entonces vacía el carrito. Todo o nada: si el archivo de la
// orden falla, el carrito queda como estaba.
func (f *CheckoutFlow) Confirm(ctx context.Context) (*domain.Order, error) {
	if err := f.guard(stepConfirm); err != nil {
		return nil, err
	}

	delay := f.uc.Delay
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	lines := f.uc.Store.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	prefs := f.uc.Store.Prefs()
	totals := ComputeTotals(lines, prefs, f.uc.Store.Offers)

	o := &domain.Order{
		ID:            uuid.New(),
		Status:        domain.OrderStatusSimulated,
		Name:          f.name,
		Email:         f.email,
		Address:       f.address,
		City:          f.city,
		PaymentMethod: f.payment,
		CouponCode:    prefs.CouponApplied,
		ShippingZip:   prefs.ShippingZip,
		ItemsCount:    totals.ItemsCount,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		ShippingCost:  totals.Shipping,
		Total:         totals.Total,
		CreatedAt:     time.Now(),
	}
	for _, l := range lines {
		o.Items = append(o.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			Qty:       l.Qty,
			UnitPrice: f.uc.Store.Offers.EffectivePrice(l.Product),
		})
	}

	if f.uc.Orders != nil {
		if err := f.uc.Orders.Save(ctx, o); err != nil {
			log.Error().Err(err).Str("order_id", o.ID.String()).Msg("archivar orden")
			return nil, err
		}
	}
	if err := f.uc.Store.clearAfterCheckout(ctx); err != nil {
		return nil, err
	}
	f.done = true
	return o, nil
}
