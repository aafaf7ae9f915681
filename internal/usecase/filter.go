package usecase

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/molivares/tiendasim/internal/domain"
)

// Colación española para ordenar por nombre como lo haría el navegador
// con localeCompare.
var nameCollator = collate.New(language.Spanish, collate.IgnoreCase)

// ApplyFilters produce la vista ordenada del catálogo según las
// preferencias. Pura: recalcula desde cero en cada llamada y nunca toca
// el catálogo.
func ApplyFilters(catalog domain.Catalog, prefs domain.Preferences) []domain.Product {
	out := make([]domain.Product, 0, len(catalog.Products))
	search := strings.ToLower(strings.TrimSpace(prefs.Search))
	for _, p := range catalog.Products {
		if search != "" {
			haystack := strings.ToLower(p.Title + " " + p.Description)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		if prefs.Category != "" && p.Category != prefs.Category {
			continue
		}
		out = append(out, p)
	}

	// Orden estable: relevance conserva el orden de carga del catálogo.
	// Los precios comparan el precio de lista, no el de oferta.
	switch prefs.Sort {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case domain.SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return nameCollator.CompareString(out[i].Title, out[j].Title) < 0
		})
	case domain.SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return nameCollator.CompareString(out[i].Title, out[j].Title) > 0
		})
	}
	return out
}
