package domain

import "context"

// CatalogSource entrega el catálogo completo una vez al arranque.
type CatalogSource interface {
	Load(ctx context.Context) (Catalog, error)
}

// Slots de la sesión persistida. Versionados en la clave: un cambio de
// formato incompatible estrena sufijo y los slots viejos se descartan
// solos por el soft-fail de lectura.
const (
	SlotCart  = "tiendasim_cart_v1"
	SlotPrefs = "tiendasim_prefs_v1"
)

// SessionStore es almacenamiento clave-valor durable. Load devuelve
// (nil, nil) cuando el slot no existe.
type SessionStore interface {
	Save(ctx context.Context, slot string, data []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
}

// OrderRepo archiva comprobantes de checkout simulado. Opcional: sin base
// configurada el checkout funciona igual y sólo devuelve la orden.
type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
}

// Assistant responde las preguntas del widget de ayuda.
type Assistant interface {
	Reply(ctx context.Context, message string) string
}
