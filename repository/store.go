package repository

import (
	"context"

	"gorm.io/gorm"
)

// IStore hands out repositories that share one database handle.
// Repositories obtained from the tx passed to Transaction take part in that transaction.
type IStore interface {
	Categories() ICategoryRepository
	Additions() IAdditionRepository
	MenuItems() IMenuItemRepository
	Neighborhoods() INeighborhoodRepository
	Customers() ICustomerRepository
	Orders() IOrderRepository
	Transaction(ctx context.Context, fn func(tx IStore) error) error
}

// Store implements IStore for GORM.
type Store struct {
	DB *gorm.DB
}

// NewStore creates a new Store instance.
func NewStore(db *gorm.DB) IStore {
	return &Store{DB: db}
}

func (s *Store) Categories() ICategoryRepository        { return NewCategoryRepository(s.DB) }
func (s *Store) Additions() IAdditionRepository         { return NewAdditionRepository(s.DB) }
func (s *Store) MenuItems() IMenuItemRepository         { return NewMenuItemRepository(s.DB) }
func (s *Store) Neighborhoods() INeighborhoodRepository { return NewNeighborhoodRepository(s.DB) }
func (s *Store) Customers() ICustomerRepository         { return NewCustomerRepository(s.DB) }
func (s *Store) Orders() IOrderRepository               { return NewOrderRepository(s.DB) }

// Transaction runs fn in a database transaction. Nested calls become savepoints.
func (s *Store) Transaction(ctx context.Context, fn func(tx IStore) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx})
	})
}
