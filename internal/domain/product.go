package domain

import (
	"fmt"
	"strings"
)

type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;size:40"`
	Title       string  `json:"title" gorm:"size:180"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"type:decimal(12,2)"`
	Category    string  `json:"category" gorm:"size:100;index"`
	Stock       int     `json:"stock" gorm:"type:int;default:0"`
	Image       string  `json:"image" gorm:"size:255"`
	Position    int     `json:"-" gorm:"type:int;default:0;index"`
}

type Category struct {
	ID   string `json:"id" gorm:"primaryKey;size:40"`
	Name string `json:"name" gorm:"size:100"`
}

// Catalog es inmutable una vez cargado: ningún componente lo modifica.
type Catalog struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
}

func (c Catalog) FindProduct(id string) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}

func (c Catalog) CategoryName(id string) string {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return id
}

// Validate revisa el esquema mínimo antes de aceptar un catálogo.
func (c Catalog) Validate() error {
	if len(c.Products) == 0 {
		return &LoadError{Op: "schema", Reason: "catálogo sin productos"}
	}
	for i, p := range c.Products {
		switch {
		case strings.TrimSpace(p.ID) == "":
			return &LoadError{Op: "schema", Reason: fmt.Sprintf("producto sin id (índice %d)", i)}
		case strings.TrimSpace(p.Title) == "":
			return &LoadError{Op: "schema", Reason: "producto " + p.ID + " sin título"}
		case p.Price < 0:
			return &LoadError{Op: "schema", Reason: "producto " + p.ID + " con precio negativo"}
		case p.Stock < 0:
			return &LoadError{Op: "schema", Reason: "producto " + p.ID + " con stock negativo"}
		}
	}
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.ID) == "" || strings.TrimSpace(cat.Name) == "" {
			return &LoadError{Op: "schema", Reason: "categoría incompleta"}
		}
	}
	return nil
}

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// ParseSortKey acepta cualquier string; lo desconocido cae en relevance,
// igual que el selector de orden original.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return SortKey(s)
	default:
		return SortRelevance
	}
}

// Preferences viaja tal cual al slot persistido; los nombres JSON son el
// formato de wire y no deben cambiar dentro de la misma versión de slot.
type Preferences struct {
	Search        string  `json:"search"`
	Category      string  `json:"category"`
	Sort          SortKey `json:"sort"`
	Coupon        string  `json:"coupon"`
	CouponApplied string  `json:"couponApplied"`
	ShippingZip   string  `json:"shippingZip"`
	ShippingCost  float64 `json:"shippingCost"`
}

func DefaultPreferences() Preferences {
	return Preferences{Sort: SortRelevance}
}
