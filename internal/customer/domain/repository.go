package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, c *Customer) error
	Upsert(ctx context.Context, db *gorm.DB, c *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Customer, error)
	List(ctx context.Context, db *gorm.DB) ([]*Customer, error)
}
