package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/commerce-admin/internal/config"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/domain/pricing"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCalculator,
	newLimits,
	NewOrderUseCase,
	NewSearchUseCase,
)

func newCalculator(cfg *config.Config) *pricing.Calculator {
	return pricing.NewCalculator(cfg.DeliveryRate, cfg.TaxRate)
}

func newLimits(cfg *config.Config) paging.Limits {
	return paging.Limits{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}
}
