package catalog

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/commerce-admin/internal/config"
	"github.com/polkiloo/commerce-admin/internal/domain/repository"
	"github.com/polkiloo/commerce-admin/internal/storage"
)

// Module exposes customer and product lookups to fx graph. The remote client
// is used when a catalog address is configured, the storage tables otherwise.
var Module = fx.Provide(newLookups)

type lookupParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Backend storage.Backend
}

type lookups struct {
	fx.Out

	Customers repository.CustomerDirectory
	Products  repository.ProductCatalog
}

func newLookups(p lookupParams) (lookups, error) {
	if p.Config.CatalogAddress == "" {
		return lookups{Customers: p.Backend.Customers(), Products: p.Backend.Products()}, nil
	}

	client, err := NewHTTPClient(p.Config.CatalogAddress, p.Logger)
	if err != nil {
		return lookups{}, err
	}
	p.Logger.Info("using remote catalog", slog.String("addr", p.Config.CatalogAddress))
	return lookups{Customers: client, Products: client}, nil
}
