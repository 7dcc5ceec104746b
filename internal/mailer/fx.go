package mailer

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatouralabs/fatoura/internal/config"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

var Module = fx.Module("mailer",
	fx.Provide(provideSender),
)

func provideSender(cfg *config.Config, log *zap.Logger) invoicedomain.EmailSender {
	return New(cfg, log)
}
