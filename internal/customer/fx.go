package customer

import (
	"go.uber.org/fx"

	"github.com/fatouralabs/fatoura/internal/customer/repository"
	"github.com/fatouralabs/fatoura/internal/customer/service"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
