package main

import (
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatouralabs/fatoura/internal/clock"
	"github.com/fatouralabs/fatoura/internal/config"
	"github.com/fatouralabs/fatoura/internal/customer"
	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	customerrepo "github.com/fatouralabs/fatoura/internal/customer/repository"
	customerservice "github.com/fatouralabs/fatoura/internal/customer/service"
	"github.com/fatouralabs/fatoura/internal/invoice"
	"github.com/fatouralabs/fatoura/internal/invoicepdf"
	"github.com/fatouralabs/fatoura/internal/mailer"
	"github.com/fatouralabs/fatoura/internal/migration"
	"github.com/fatouralabs/fatoura/internal/observability"
	"github.com/fatouralabs/fatoura/internal/seed"
	"github.com/fatouralabs/fatoura/internal/server"
	"github.com/fatouralabs/fatoura/pkg/db"
)

func main() {
	root := &cobra.Command{
		Use:   "fatoura",
		Short: "Invoicing service",
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), allCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(*cobra.Command, []string) error {
			newServeApp().Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, gdb, err := bootstrap()
			if err != nil {
				return err
			}
			defer syncLogger(log)
			return migration.Run(gdb, cfg, log)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Import customers from the configuration snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, gdb, err := bootstrap()
			if err != nil {
				return err
			}
			defer syncLogger(log)

			if err := migration.Run(gdb, cfg, log); err != nil {
				return err
			}

			svc := newCustomerService(gdb, log)
			return seed.Run(cmd.Context(), cfg, svc, log)
		},
	}
}

func allCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Migrate, seed, then run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, gdb, err := bootstrap()
			if err != nil {
				return err
			}
			if err := migration.Run(gdb, cfg, log); err != nil {
				return err
			}
			if err := seed.Run(cmd.Context(), cfg, newCustomerService(gdb, log), log); err != nil {
				return err
			}
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
			syncLogger(log)

			newServeApp().Run()
			return nil
		},
	}
}

func newServeApp() *fx.App {
	return fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,

		customer.Module,
		invoice.Module,
		invoicepdf.Module,
		mailer.Module,
		server.Module,
	)
}

// bootstrap wires the pieces the one-shot commands need without spinning up
// the full fx application.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := observability.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	gdb, err := db.Open(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, gdb, nil
}

func newCustomerService(gdb *gorm.DB, log *zap.Logger) customerdomain.Service {
	return customerservice.New(customerservice.Params{
		DB:   gdb,
		Log:  log,
		Repo: customerrepo.Provide(),
	})
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func syncLogger(log *zap.Logger) {
	_ = log.Sync()
}
