package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	customerdomain "github.com/fatouralabs/fatoura/internal/customer/domain"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo customerdomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo customerdomain.Repository
}

func New(p Params) customerdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("customer.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateRequest) (*customerdomain.Customer, error) {
	entity, err := buildCustomer(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, entity.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, customerdomain.ErrDuplicateID
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, customerdomain.ErrDuplicateID
		}
		return nil, err
	}

	s.log.Info("customer created", zap.String("customer_id", entity.ID), zap.String("rule", string(entity.Rule)))
	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*customerdomain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, customerdomain.ErrInvalidID
	}
	entity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, customerdomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) List(ctx context.Context) ([]*customerdomain.Customer, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Import(ctx context.Context, customers []customerdomain.CreateRequest) (int, error) {
	imported := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, req := range customers {
			entity, err := buildCustomer(req)
			if err != nil {
				return err
			}
			if err := s.repo.Upsert(ctx, tx, entity); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("customers imported", zap.Int("count", imported))
	return imported, nil
}

func buildCustomer(req customerdomain.CreateRequest) (*customerdomain.Customer, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, customerdomain.ErrInvalidID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, customerdomain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, customerdomain.ErrInvalidEmail
	}

	rule := normalizeRule(req.Rule)
	if !rule.Valid() {
		return nil, customerdomain.ErrInvalidRule
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "EUR"
	}

	entity := &customerdomain.Customer{
		ID:                id,
		Name:              name,
		Email:             email,
		Rule:              rule,
		DefaultHourlyRate: req.DefaultHourlyRate,
		Currency:          currency,
	}
	if addr := strings.TrimSpace(req.Address); addr != "" {
		entity.Address = &addr
	}
	if cn := strings.TrimSpace(req.ContractNumber); cn != "" {
		entity.ContractNumber = &cn
	}
	return entity, nil
}

// normalizeRule accepts the legacy Dutch "omzet" spelling from old
// customers.json files.
func normalizeRule(rule customerdomain.CompensationRule) customerdomain.CompensationRule {
	switch strings.ToLower(strings.TrimSpace(string(rule))) {
	case "omzet", "revenue_share":
		return customerdomain.RuleRevenueShare
	case "hourly":
		return customerdomain.RuleHourly
	default:
		return customerdomain.CompensationRule(rule)
	}
}
