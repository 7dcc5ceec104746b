package invoice

import (
	"go.uber.org/fx"

	"github.com/fatouralabs/fatoura/internal/invoice/repository"
	"github.com/fatouralabs/fatoura/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
