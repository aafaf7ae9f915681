package usecase

import (
	"context"
	"sync"

	"github.com/molivares/tiendasim/internal/domain"
)

// StoreUC es el contenedor de estado de la sesión: catálogo inmutable,
// carrito y preferencias. Toda mutación pasa por el set de operaciones de
// acá y termina en una escritura de sesión. El mutex serializa a los
// llamadores concurrentes del adapter HTTP; el modelo sigue siendo un
// carrito por sesión activa.
type StoreUC struct {
	mu      sync.Mutex
	catalog domain.Catalog
	cart    *domain.Cart
	prefs   domain.Preferences

	Offers  OfferTable
	Session domain.SessionStore
}

func NewStoreUC(catalog domain.Catalog, session domain.SessionStore) *StoreUC {
	return &StoreUC{
		catalog: catalog,
		cart:    domain.NewCart(),
		prefs:   domain.DefaultPreferences(),
		Offers:  DefaultOffers(),
		Session: session,
	}
}

// Restore carga los slots persistidos. Soft-fail: nunca devuelve error,
// lo corrupto arranca vacío.
func (s *StoreUC) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines, prefs := loadSession(ctx, s.Session)
	s.cart.Replace(lines)
	s.prefs = prefs
}

func (s *StoreUC) persist(ctx context.Context) error {
	return saveSession(ctx, s.Session, s.cart.Lines(), s.prefs)
}

func (s *StoreUC) totals() domain.CartTotals {
	return ComputeTotals(s.cart.Lines(), s.prefs, s.Offers)
}

// AddToCart agrega qty unidades del producto tomando un snapshot fresco
// del catálogo vivo. El chequeo de stock es contra el stock publicado,
// no contra un pool descontado: sesiones paralelas no se coordinan.
func (s *StoreUC) AddToCart(ctx context.Context, productID string, qty int) (domain.CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.catalog.FindProduct(productID)
	if !ok {
		return s.totals(), domain.ErrNotFound
	}
	if err := s.cart.Add(*p, qty); err != nil {
		return s.totals(), err
	}
	return s.totals(), s.persist(ctx)
}

func (s *StoreUC) RemoveFromCart(ctx context.Context, productID string) (domain.CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
	return s.totals(), s.persist(ctx)
}

// SetQuantity edita la cantidad de una línea existente con clamp a
// [1, stock]. No elimina nunca: un pedido de 0 deja 1.
func (s *StoreUC) SetQuantity(ctx context.Context, productID string, qty int) (domain.CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(productID, qty)
	return s.totals(), s.persist(ctx)
}

// Decrement quita una unidad; al llegar a cero la línea se elimina. Es
// deliberadamente asimétrico con SetQuantity: son los dos caminos que la
// tienda original exponía y se conservan por separado.
func (s *StoreUC) Decrement(ctx context.Context, productID string) (domain.CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch qty := s.cart.Qty(productID); {
	case qty > 1:
		s.cart.SetQuantity(productID, qty-1)
	case qty == 1:
		s.cart.Remove(productID)
	default:
		return s.totals(), nil
	}
	return s.totals(), s.persist(ctx)
}

func (s *StoreUC) ClearCart(ctx context.Context) (domain.CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.totals(), s.persist(ctx)
}

// ApplyFilters actualiza las preferencias de búsqueda y devuelve la vista
// filtrada y ordenada del catálogo.
func (s *StoreUC) ApplyFilters(ctx context.Context, search, category, sortKey string) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Search = search
	s.prefs.Category = category
	s.prefs.Sort = domain.ParseSortKey(sortKey)
	return ApplyFilters(s.catalog, s.prefs), s.persist(ctx)
}

// Filtered devuelve la vista con las preferencias vigentes, sin mutar.
func (s *StoreUC) Filtered() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ApplyFilters(s.catalog, s.prefs)
}

// ApplyCoupon registra el cupón si es reconocido y devuelve si lo fue.
// Un código desconocido no es error ni pisa el cupón aplicado.
func (s *StoreUC) ApplyCoupon(ctx context.Context, code string) (bool, domain.CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !CouponRecognized(code) {
		return false, s.totals(), nil
	}
	s.prefs.Coupon = code
	s.prefs.CouponApplied = NormalizeCoupon(code)
	return true, s.totals(), s.persist(ctx)
}

func (s *StoreUC) SetShippingZip(ctx context.Context, zip string) (domain.CartTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.ShippingZip = zip
	s.prefs.ShippingCost = ShippingCostFor(zip)
	return s.totals(), s.persist(ctx)
}

func (s *StoreUC) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals()
}

func (s *StoreUC) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *StoreUC) Prefs() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

func (s *StoreUC) Catalog() domain.Catalog { return s.catalog }

// clearAfterCheckout vacía el carrito como parte de un checkout exitoso.
func (s *StoreUC) clearAfterCheckout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.persist(ctx)
}
