package usecase

import (
	"context"

	"github.com/molivares/tiendasim/internal/domain"
)

// CatalogUC carga el catálogo una sola vez al arranque y lo valida. El
// catálogo resultante es de sólo lectura para el resto de la sesión.
type CatalogUC struct {
	Source domain.CatalogSource
}

func (uc *CatalogUC) Load(ctx context.Context) (domain.Catalog, error) {
	cat, err := uc.Source.Load(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	if err := cat.Validate(); err != nil {
		return domain.Catalog{}, err
	}
	return cat, nil
}
