package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/commerce-admin/internal/adapter/catalog"
	"github.com/polkiloo/commerce-admin/internal/app"
	"github.com/polkiloo/commerce-admin/internal/config"
	"github.com/polkiloo/commerce-admin/internal/logger"
	"github.com/polkiloo/commerce-admin/internal/server/http/router"
	"github.com/polkiloo/commerce-admin/internal/storage"
	"github.com/polkiloo/commerce-admin/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		storage.Module,
		catalog.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
