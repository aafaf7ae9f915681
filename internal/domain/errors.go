package domain

import "errors"

var (
	ErrNotFound          = errors.New("no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEmptyCart         = errors.New("carrito vacío")

	// Flujo de checkout: pasos fuera de orden o flujo ya terminado.
	ErrFlowOrder = errors.New("paso de checkout fuera de orden")
	ErrFlowDone  = errors.New("checkout ya finalizado")
)

// LoadError cubre las fallas de carga del catálogo: fuente inalcanzable
// ("fetch"), status no exitoso ("status") o payload inválido ("schema").
// Es fatal para el render inicial; no hay reintento incorporado.
type LoadError struct {
	Op     string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	msg := "catálogo: " + e.Op
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }
