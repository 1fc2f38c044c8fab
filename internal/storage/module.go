// Package storage selects the persistence backend configured for the process.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/commerce-admin/internal/config"
	"github.com/polkiloo/commerce-admin/internal/domain/repository"
	"github.com/polkiloo/commerce-admin/internal/storage/memory"
	"github.com/polkiloo/commerce-admin/internal/storage/postgres"
)

// Backend is a repository factory with a connection lifecycle.
type Backend interface {
	repository.Factory
	HealthCheck(ctx context.Context) error
	Close()
}

// Module wires the configured backend and its repository adapters.
var Module = fx.Options(
	fx.Provide(newBackend),
	fx.Provide(
		func(b Backend) repository.OrderRepository { return b.Orders() },
		func(b Backend) repository.ProductRepository { return b.Products() },
		func(b Backend) repository.UserRepository { return b.Users() },
		func(b Backend) repository.ReviewRepository { return b.Reviews() },
	),
	fx.Invoke(registerLifecycle),
)

type backendParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newBackend(p backendParams) (Backend, error) {
	switch p.Config.StorageDriver {
	case config.StorageMemory:
		p.Logger.Info("using in-memory storage")
		return memory.New(p.Logger), nil
	case config.StoragePostgres, "":
		s, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", p.Config.StorageDriver)
	}
}

func registerLifecycle(lc fx.Lifecycle, backend Backend) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			backend.Close()
			return nil
		},
	})
}
