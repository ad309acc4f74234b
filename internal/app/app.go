// Package app wires storage, services and HTTP handlers together.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/account"
	accountrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/account/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart"
	cartrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog"
	catalogrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

// Stores holds one repository per entity type.
type Stores struct {
	Items catalogrepo.Repository
	Users accountrepo.Repository
	Carts cartrepo.Repository

	db *sqlx.DB
}

// Close releases the database pool, if any.
func (s *Stores) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks the backing store is reachable.
func (s *Stores) Ping(ctx context.Context) error {
	if s.db != nil {
		return s.db.PingContext(ctx)
	}
	return nil
}

// OpenStores builds the repositories for the configured driver.
func OpenStores(ctx context.Context, cfg database.Config) (*Stores, error) {
	switch cfg.Driver {
	case database.DriverFile:
		fs, err := database.OpenFile(cfg.File, database.CollectionUsers, database.CollectionItems, database.CollectionCarts)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return &Stores{
			Items: catalogrepo.NewFileRepo(fs),
			Users: accountrepo.NewFileRepo(fs),
			Carts: cartrepo.NewFileRepo(fs),
		}, nil
	case database.DriverPostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		items := catalogrepo.NewPostgresRepo(db)
		users := accountrepo.NewPostgresRepo(db)
		carts := cartrepo.NewPostgresRepo(db)
		for _, ensure := range []func(context.Context) error{users.EnsureTable, items.EnsureTable, carts.EnsureTable} {
			if err := ensure(ctx); err != nil {
				db.Close()
				return nil, fmt.Errorf("ensure tables: %w", err)
			}
		}
		return &Stores{Items: items, Users: users, Carts: carts, db: db}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// App is the assembled service.
type App struct {
	Handler http.Handler
	Catalog *catalog.Service
	Stores  *Stores
}

// New assembles services and routes on top of stores and seeds the catalog
// when it is empty.
func New(ctx context.Context, logger *zap.SugaredLogger, stores *Stores, sessCfg session.Config) (*App, error) {
	catalogSvc := catalog.NewService(stores.Items)
	accountSvc := account.NewService(stores.Users, nil)
	cartSvc := cart.NewService(stores.Carts, catalogSvc)
	issuer := session.NewIssuer(sessCfg)

	seeded, err := catalogSvc.Seed(ctx)
	if err != nil {
		return nil, err
	}
	if seeded {
		logger.Infow("seeded empty catalog")
	}

	h := router.RegisterRoutes(logger, router.Handlers{
		Account: account.NewHandler(accountSvc, issuer, logger),
		Catalog: catalog.NewHandler(catalogSvc, logger),
		Cart:    cart.NewHandler(cartSvc, logger),
		Session: issuer,
	})
	return &App{Handler: h, Catalog: catalogSvc, Stores: stores}, nil
}
