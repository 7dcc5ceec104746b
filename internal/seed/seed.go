// Package seed imports the customer roster from the configuration snapshot.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fatouralabs/fatoura/internal/config"
	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
)

// customerEntry mirrors the customers.json shape. The rule value "omzet" is
// the legacy spelling of revenue_share and is accepted as-is.
type customerEntry struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Email          string   `json:"email"`
	ContractNumber string   `json:"contractNumber"`
	Rule           string   `json:"rule"`
	HourlyRate     *float64 `json:"hourlyRate"`
	Currency       string   `json:"currency"`
}

// Run upserts every customer in the snapshot file. Re-running against the
// same file is a no-op apart from picking up edits.
func Run(ctx context.Context, cfg *config.Config, svc customerdomain.Service, log *zap.Logger) error {
	log = log.Named("seed")

	data, err := os.ReadFile(cfg.CustomersFile)
	if err != nil {
		return fmt.Errorf("read customers file %s: %w", cfg.CustomersFile, err)
	}

	var entries []customerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse customers file %s: %w", cfg.CustomersFile, err)
	}

	requests := make([]customerdomain.CreateRequest, 0, len(entries))
	for _, e := range entries {
		requests = append(requests, customerdomain.CreateRequest{
			ID:                e.ID,
			Name:              e.Name,
			Address:           e.Address,
			Email:             e.Email,
			ContractNumber:    e.ContractNumber,
			Rule:              customerdomain.CompensationRule(e.Rule),
			DefaultHourlyRate: e.HourlyRate,
			Currency:          e.Currency,
		})
	}

	count, err := svc.Import(ctx, requests)
	if err != nil {
		return err
	}
	log.Info("customers imported", zap.Int("count", count), zap.String("file", cfg.CustomersFile))
	return nil
}
