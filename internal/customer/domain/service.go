package domain

import "context"

type CreateRequest struct {
	ID                string
	Name              string
	Address           string
	Email             string
	ContractNumber    string
	Rule              CompensationRule
	DefaultHourlyRate *float64
	Currency          string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
	// Import upserts customers from a configuration snapshot, keyed by ID.
	Import(ctx context.Context, customers []CreateRequest) (int, error)
}
