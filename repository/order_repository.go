package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// IOrderRepository defines the interface for order data operations.
type IOrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
}

// OrderRepository implements IOrderRepository for GORM.
type OrderRepository struct {
	DB *gorm.DB
}

// NewOrderRepository creates a new OrderRepository instance.
func NewOrderRepository(db *gorm.DB) IOrderRepository {
	return &OrderRepository{DB: db}
}

// Create persists the order header, its lines and their complements in one transaction.
// GORM saves Lines and Lines.Complements through the has-many associations.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Neighborhood").Create(order).Error; err != nil {
			return translateError(err, "order", fmt.Sprint(order.CustomerID))
		}
		return nil
	})
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Lines.Complements", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Customer").
		Preload("Neighborhood")
}

// FindByID loads the order with its lines, complements, customer and neighborhood.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := preloadOrder(r.DB.WithContext(ctx)).First(&order, id).Error; err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	return &order, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	db := r.DB.WithContext(ctx)
	if err := requireAll(db, &models.Customer{}, "customer", []uint{customerID}); err != nil {
		return nil, err
	}
	var orders []models.Order
	err := db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Lines.Complements", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatus only touches status and updated_at. Totals are never rewritten.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	db := r.DB.WithContext(ctx)
	if err := requireAll(db, &models.Order{}, "order", []uint{id}); err != nil {
		return err
	}
	return db.Model(&models.Order{ID: id}).Update("status", status).Error
}
