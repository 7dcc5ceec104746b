// Package migration owns the database schema. MySQL deployments run the
// embedded versioned migrations; sqlite deployments (development, tests) use
// the model-driven migrator instead.
package migration

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatouralabs/fatoura/internal/config"
	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
	invoicedomain "github.com/fatouralabs/fatoura/internal/invoice/domain"
)

//go:embed sql/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "sql"

func Run(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	log = log.Named("migration")

	if cfg.Database.Driver == "mysql" {
		if err := runVersioned(db); err != nil {
			return err
		}
		log.Info("migrations applied", zap.String("driver", cfg.Database.Driver))
		return nil
	}

	if err := db.AutoMigrate(
		&customerdomain.Customer{},
		&invoicedomain.Invoice{},
		&invoicedomain.LineItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("schema synchronized", zap.String("driver", cfg.Database.Driver))
	return nil
}

func runVersioned(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap database handle: %w", err)
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := ensureNotDirty(migrator); err != nil {
		return err
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return ensureNotDirty(migrator)
}

func ensureNotDirty(migrator *migrate.Migrate) error {
	version, dirty, err := migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database migrations are dirty at version %d", version)
	}
	return nil
}
