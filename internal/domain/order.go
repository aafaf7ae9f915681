package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCash     PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentTransfer, PaymentCash:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusSimulated OrderStatus = "simulated"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order es el comprobante de una compra simulada. No hay autoridad de
// inventario ni cobro real detrás: es el registro que el checkout
// devuelve (y archiva, si hay base configurada).
type Order struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status        OrderStatus `gorm:"type:varchar(30);index"`
	Items         []OrderItem
	Name          string        `gorm:"size:140"`
	Email         string        `gorm:"size:140"`
	Address       string        `gorm:"size:255"`
	City          string        `gorm:"size:80"`
	PaymentMethod PaymentMethod `gorm:"size:30"`
	CouponCode    string        `gorm:"size:40"`
	ShippingZip   string        `gorm:"size:20"`
	ItemsCount    int           `gorm:"type:int"`
	Subtotal      float64       `gorm:"type:decimal(12,2)"`
	Discount      float64       `gorm:"type:decimal(12,2);default:0"`
	ShippingCost  float64       `gorm:"type:decimal(12,2);default:0"`
	Total         float64       `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID string    `gorm:"size:40;index"`
	Title     string    `gorm:"size:180"`
	Qty       int       `gorm:"not null"`
	UnitPrice float64   `gorm:"type:decimal(12,2)"`
}

// CartTotals se recalcula a demanda y nunca se persiste.
type CartTotals struct {
	ItemsCount int     `json:"itemsCount"`
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Shipping   float64 `json:"shipping"`
	Total      float64 `json:"total"`
}
