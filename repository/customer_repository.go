package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

const searchLimit = 50

// ICustomerRepository defines the interface for customer data operations.
type ICustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	FindByName(ctx context.Context, name string) ([]models.Customer, error)
	Search(ctx context.Context, term string) ([]models.Customer, error)
}

// CustomerRepository implements ICustomerRepository for GORM.
type CustomerRepository struct {
	DB *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository instance.
func NewCustomerRepository(db *gorm.DB) ICustomerRepository {
	return &CustomerRepository{DB: db}
}

// normalizeCustomer trims fields and stores an empty phone as NULL so it never collides.
// A customer needs a name or a phone.
func normalizeCustomer(c *models.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Phone != nil {
		phone := strings.TrimSpace(*c.Phone)
		if phone == "" {
			c.Phone = nil
		} else {
			c.Phone = &phone
		}
	}
	if c.Name == "" && c.Phone == nil {
		return models.InvalidInputf("customer needs a name or a phone")
	}
	if c.NeighborhoodID != nil && *c.NeighborhoodID == 0 {
		c.NeighborhoodID = nil
	}
	return nil
}

func customerWriteError(err error, c *models.Customer) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) && c.Phone != nil {
		return fmt.Errorf("customer phone %s: %w", *c.Phone, models.ErrDuplicatePhone)
	}
	return translateError(err, "customer", c.Name)
}

// Create inserts the customer. A phone already on file fails with ErrDuplicatePhone.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := normalizeCustomer(customer); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if customer.NeighborhoodID != nil {
			if err := requireAll(tx, &models.Neighborhood{}, "neighborhood", []uint{*customer.NeighborhoodID}); err != nil {
				return err
			}
		}
		return customerWriteError(tx.Create(customer).Error, customer)
	})
}

// Update saves the customer. A phone taken by another customer fails with ErrDuplicatePhone.
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	if err := normalizeCustomer(customer); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Customer
		if err := tx.First(&existing, customer.ID).Error; err != nil {
			return notFoundOr(err, "customer", customer.ID)
		}
		if customer.NeighborhoodID != nil {
			if err := requireAll(tx, &models.Neighborhood{}, "neighborhood", []uint{*customer.NeighborhoodID}); err != nil {
				return err
			}
		}
		customer.CreatedAt = existing.CreatedAt
		customer.Neighborhood = nil
		return customerWriteError(tx.Save(customer).Error, customer)
	})
}

// Delete refuses to remove a customer with orders on file.
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, id).Error; err != nil {
			return notFoundOr(err, "customer", id)
		}
		var orders int64
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return fmt.Errorf("customer %q has %d orders: %w", customer.Name, orders, models.ErrReferentialConflict)
		}
		return translateError(tx.Delete(&customer).Error, "customer", customer.Name)
	})
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, notFoundOr(err, "customer", id)
	}
	return &customer, nil
}

// FindByPhone returns nil, nil when no customer has the phone.
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	err := r.DB.WithContext(ctx).Where("phone = ?", strings.TrimSpace(phone)).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByName returns every customer whose name matches case-insensitively, lowest id first.
func (r *CustomerRepository) FindByName(ctx context.Context, name string) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		Order("id").
		Find(&customers).Error
	return customers, err
}

// Search matches a name fragment or a phone prefix.
func (r *CustomerRepository) Search(ctx context.Context, term string) ([]models.Customer, error) {
	term = strings.TrimSpace(term)
	var customers []models.Customer
	q := r.DB.WithContext(ctx).Order("name").Order("id").Limit(searchLimit)
	if term != "" {
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", "%"+strings.ToLower(term)+"%", term+"%")
	}
	err := q.Find(&customers).Error
	return customers, err
}
