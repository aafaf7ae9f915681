package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/molivares/tiendasim/internal/adapters/export"
	"github.com/molivares/tiendasim/internal/domain"
	"github.com/molivares/tiendasim/internal/usecase"
)

// La capa de presentación real es el navegador; este adapter es el
// collaborador que reenvía las acciones del usuario al core y devuelve
// el estado recalculado. No hay push: el cliente re-renderiza con lo que
// recibe de cada llamada.
type Server struct {
	mux      *http.ServeMux
	store    *usecase.StoreUC
	checkout *usecase.CheckoutUC
	orders   domain.OrderRepo
	helper   domain.Assistant
}

func New(store *usecase.StoreUC, checkout *usecase.CheckoutUC, orders domain.OrderRepo, helper domain.Assistant) http.Handler {
	s := &Server{
		mux:      http.NewServeMux(),
		store:    store,
		checkout: checkout,
		orders:   orders,
		helper:   helper,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/api/products", s.handleProducts)
	s.mux.HandleFunc("/api/categories", s.handleCategories)

	s.mux.HandleFunc("/api/cart", s.handleCart)
	s.mux.HandleFunc("/api/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/api/cart/decrement", s.handleCartDecrement)
	s.mux.HandleFunc("/api/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/api/cart/clear", s.handleCartClear)

	s.mux.HandleFunc("/api/coupon", s.handleCoupon)
	s.mux.HandleFunc("/api/shipping", s.handleShipping)
	s.mux.HandleFunc("/api/checkout", s.handleCheckout)
	s.mux.HandleFunc("/api/orders/", s.handleOrder)

	s.mux.HandleFunc("/api/chat", s.handleChat)
	s.mux.HandleFunc("/api/export/catalog.xlsx", s.handleExportCatalog)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

// GET /api/products aplica los filtros que vengan en la query y devuelve
// la vista resultante. Sin query devuelve la vista con las preferencias
// vigentes.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	var list []domain.Product
	if r.URL.RawQuery == "" {
		list = s.store.Filtered()
	} else {
		qv := r.URL.Query()
		var err error
		list, err = s.store.ApplyFilters(r.Context(), qv.Get("q"), qv.Get("category"), qv.Get("sort"))
		if err != nil {
			http.Error(w, "persist", 500)
			return
		}
	}
	writeJSON(w, 200, map[string]any{"products": list, "prefs": s.store.Prefs()})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	writeJSON(w, 200, map[string]any{"categories": s.store.Catalog().Categories})
}

type cartReq struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeCartState(w)
	case http.MethodPost:
		var req cartReq
		if !readBody(w, r, &req) {
			return
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		totals, err := s.store.AddToCart(r.Context(), req.ID, req.Qty)
		if err != nil {
			s.cartError(w, err, totals)
			return
		}
		writeJSON(w, 200, map[string]any{"status": "ok", "totals": totals})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !requirePost(w, r) || !readBody(w, r, &req) {
		return
	}
	totals, err := s.store.SetQuantity(r.Context(), req.ID, req.Qty)
	if err != nil {
		http.Error(w, "persist", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok", "totals": totals})
}

func (s *Server) handleCartDecrement(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !requirePost(w, r) || !readBody(w, r, &req) {
		return
	}
	totals, err := s.store.Decrement(r.Context(), req.ID)
	if err != nil {
		http.Error(w, "persist", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok", "totals": totals})
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !requirePost(w, r) || !readBody(w, r, &req) {
		return
	}
	totals, err := s.store.RemoveFromCart(r.Context(), req.ID)
	if err != nil {
		http.Error(w, "persist", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok", "totals": totals})
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	totals, err := s.store.ClearCart(r.Context())
	if err != nil {
		http.Error(w, "persist", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok", "totals": totals})
}

func (s *Server) handleCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !requirePost(w, r) || !readBody(w, r, &req) {
		return
	}
	applied, totals, err := s.store.ApplyCoupon(r.Context(), req.Code)
	if err != nil {
		http.Error(w, "persist", 500)
		return
	}
	// Cupón desconocido no es error: el cliente decide cómo avisar.
	writeJSON(w, 200, map[string]any{"applied": applied, "totals": totals})
}

func (s *Server) handleShipping(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Zip string `json:"zip"`
	}
	if !requirePost(w, r) || !readBody(w, r, &req) {
		return
	}
	totals, err := s.store.SetShippingZip(r.Context(), req.Zip)
	if err != nil {
		http.Error(w, "persist", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok", "totals": totals})
}

type checkoutReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Payment string `json:"payment"`
}

// POST /api/checkout recorre el flujo completo en una sola llamada: los
// pasos ya vienen juntados por el cliente, pero el orden y la validación
// los sigue imponiendo el flow.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if !requirePost(w, r) || !readBody(w, r, &req) {
		return
	}
	flow, err := s.checkout.Begin()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			writeJSON(w, 409, map[string]any{"error": "carrito vacío"})
			return
		}
		http.Error(w, "checkout", 500)
		return
	}
	steps := []func() error{
		func() error { return flow.SubmitContact(req.Name, req.Email) },
		func() error { return flow.SubmitAddress(req.Address, req.City) },
		func() error { return flow.SubmitPayment(req.Payment) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			flow.Cancel()
			writeJSON(w, 400, map[string]any{"error": err.Error()})
			return
		}
	}
	order, err := flow.Confirm(r.Context())
	if err != nil {
		writeJSON(w, 500, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, 200, map[string]any{
		"status":  "ok",
		"orderId": order.ID.String(),
		"total":   order.Total,
		"items":   order.ItemsCount,
	})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	if s.orders == nil {
		http.Error(w, "sin archivo de órdenes", 404)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	wantXLSX := strings.HasSuffix(id, ".xlsx")
	id = strings.TrimSuffix(id, ".xlsx")
	o, err := s.orders.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "orden", 500)
		return
	}
	if wantXLSX {
		data, err := export.OrderXLSX(o)
		if err != nil {
			http.Error(w, "export", 500)
			return
		}
		serveXLSX(w, "orden-"+o.ID.String()+".xlsx", data)
		return
	}
	writeJSON(w, 200, o)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !requirePost(w, r) || !readBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "mensaje vacío", 400)
		return
	}
	writeJSON(w, 200, map[string]any{"reply": s.helper.Reply(r.Context(), req.Message)})
}

func (s *Server) handleExportCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	data, err := export.CatalogXLSX(s.store.Catalog())
	if err != nil {
		http.Error(w, "export", 500)
		return
	}
	serveXLSX(w, "catalogo.xlsx", data)
}

func (s *Server) writeCartState(w http.ResponseWriter) {
	writeJSON(w, 200, map[string]any{
		"lines":  s.store.Lines(),
		"totals": s.store.Totals(),
		"prefs":  s.store.Prefs(),
	})
}

func (s *Server) cartError(w http.ResponseWriter, err error, totals domain.CartTotals) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "producto inexistente", 404)
	case errors.Is(err, domain.ErrInsufficientStock):
		writeJSON(w, 409, map[string]any{"error": "stock insuficiente", "totals": totals})
	default:
		http.Error(w, "cart", 500)
	}
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return false
	}
	return true
}

func readBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "body", 400)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func serveXLSX(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = w.Write(data)
}
