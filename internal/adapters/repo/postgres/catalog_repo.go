package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/molivares/tiendasim/internal/domain"
)

// CatalogRepo lee el catálogo desde Postgres. Sólo lectura: el catálogo
// es inmutable durante la sesión, la tabla se siembra aparte.
type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// Load trae productos en orden de posición, que reemplaza al orden del
// documento JSON como orden "relevance".
func (r *CatalogRepo) Load(ctx context.Context) (domain.Catalog, error) {
	var cat domain.Catalog
	if err := r.db.WithContext(ctx).Order("position asc").Find(&cat.Products).Error; err != nil {
		return domain.Catalog{}, &domain.LoadError{Op: "fetch", Err: err}
	}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&cat.Categories).Error; err != nil {
		return domain.Catalog{}, &domain.LoadError{Op: "fetch", Err: err}
	}
	return cat, nil
}

// Seed carga el catálogo inicial sólo si la tabla está vacía.
func (r *CatalogRepo) Seed(ctx context.Context, cat domain.Catalog) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range cat.Products {
			cat.Products[i].Position = i
			if err := tx.Create(&cat.Products[i]).Error; err != nil {
				return err
			}
		}
		for i := range cat.Categories {
			if err := tx.Create(&cat.Categories[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
