package invoicepdf

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatouralabs/fatoura/internal/config"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

var Module = fx.Module("invoicepdf",
	fx.Provide(provideRenderer),
	fx.Provide(provideStore),
)

func provideRenderer(log *zap.Logger) invoicedomain.Renderer {
	return NewRenderer(log)
}

func provideStore(cfg *config.Config) invoicedomain.DocumentStore {
	return NewStore(cfg.Storage.Dir)
}
