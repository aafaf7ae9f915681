package app

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/molivares/tiendasim/internal/adapters/assistant"
	"github.com/molivares/tiendasim/internal/adapters/catalogfeed"
	"github.com/molivares/tiendasim/internal/adapters/httpserver"
	"github.com/molivares/tiendasim/internal/adapters/repo/postgres"
	"github.com/molivares/tiendasim/internal/adapters/session/localfs"
	sessionredis "github.com/molivares/tiendasim/internal/adapters/session/redis"
	"github.com/molivares/tiendasim/internal/domain"
	"github.com/molivares/tiendasim/internal/usecase"
)

type App struct {
	DB       *gorm.DB // nil sin base
	Store    *usecase.StoreUC
	Checkout *usecase.CheckoutUC
	Orders   domain.OrderRepo
	Helper   domain.Assistant
}

// NewApp elige adapters según el entorno, carga el catálogo una vez y
// restaura la sesión persistida. Con db nil todo corre contra el feed
// JSON y el storage local.
func NewApp(ctx context.Context, db *gorm.DB) (*App, error) {
	a := &App{DB: db}

	var source domain.CatalogSource
	if db != nil {
		if err := migrateAndSeed(ctx, db); err != nil {
			return nil, err
		}
		source = postgres.NewCatalogRepo(db)
		a.Orders = postgres.NewOrderRepo(db)
	} else {
		location := os.Getenv("CATALOG_URL")
		if location == "" {
			location = os.Getenv("CATALOG_FILE")
		}
		if location == "" {
			location = "data/products.json"
		}
		source = catalogfeed.New(location)
	}

	var session domain.SessionStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rs := sessionredis.New(addr)
		if err := rs.Ping(ctx); err != nil {
			return nil, err
		}
		session = rs
	} else {
		stateDir := os.Getenv("STATE_DIR")
		if stateDir == "" {
			stateDir = "state"
		}
		session = localfs.New(stateDir)
	}

	catalogUC := &usecase.CatalogUC{Source: source}
	catalog, err := catalogUC.Load(ctx)
	if err != nil {
		return nil, err
	}

	a.Store = usecase.NewStoreUC(catalog, session)
	a.Store.Restore(ctx)

	delay := usecase.DefaultCheckoutDelay
	if raw := os.Getenv("CHECKOUT_DELAY_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms >= 0 {
			delay = time.Duration(ms) * time.Millisecond
		}
	}
	a.Checkout = &usecase.CheckoutUC{Store: a.Store, Orders: a.Orders, Delay: delay}
	a.Helper = assistant.New(os.Getenv("OPENAI_API_KEY"))

	log.Info().
		Int("products", len(catalog.Products)).
		Bool("db", db != nil).
		Msg("app lista")
	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Store, a.Checkout, a.Orders, a.Helper)
}

func migrateAndSeed(ctx context.Context, db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Product{}, &domain.Category{}, &domain.Order{}, &domain.OrderItem{},
	); err != nil {
		return err
	}
	repo := postgres.NewCatalogRepo(db)
	return repo.Seed(ctx, demoCatalog())
}

// demoCatalog es el catálogo de arranque para bases vacías; replica la
// tienda de muestra original.
func demoCatalog() domain.Catalog {
	return domain.Catalog{
		Categories: []domain.Category{
			{ID: "electronica", Name: "Electrónica"},
			{ID: "hogar", Name: "Hogar"},
			{ID: "moda", Name: "Moda"},
		},
		Products: []domain.Product{
			{ID: "p-1001", Title: "Auriculares Bluetooth", Description: "Inalámbricos, 24h de batería", Price: 39.99, Category: "electronica", Stock: 12, Image: "https://images.unsplash.com/photo-1518444065439-e933c06ce9cd"},
			{ID: "p-1002", Title: "Smartwatch", Description: "Reloj inteligente con monitor de ritmo", Price: 89.9, Category: "electronica", Stock: 8, Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30"},
			{ID: "p-1003", Title: "Lámpara de escritorio", Description: "LED regulable con puerto USB", Price: 24.5, Category: "hogar", Stock: 15, Image: "https://images.unsplash.com/photo-1507473885765-e6ed057f782c"},
			{ID: "p-1004", Title: "Zapatillas urbanas", Description: "Livianas y cómodas para todos los días", Price: 59.0, Category: "moda", Stock: 10, Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff"},
			{ID: "p-1005", Title: "Cafetera de filtro", Description: "Jarra de vidrio, 1.2L", Price: 45.75, Category: "hogar", Stock: 6, Image: "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6"},
			{ID: "p-1006", Title: "Campera impermeable", Description: "Con capucha, ideal media estación", Price: 74.99, Category: "moda", Stock: 5, Image: "https://images.unsplash.com/photo-1551028719-00167b16eac5"},
			{ID: "p-1007", Title: "Ratón Razer", Description: "Gaming, sensor óptico de alta precisión", Price: 49.99, Category: "electronica", Stock: 9, Image: "https://images.unsplash.com/photo-1527814050087-3793815479db"},
			{ID: "p-1008", Title: "MacBook M4", Description: "Portátil de 14 pulgadas, chip M4", Price: 1599.0, Category: "electronica", Stock: 3, Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8"},
		},
	}
}
