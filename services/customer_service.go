package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/repository"
)

// ResolveOptions controls side effects of ResolveOrCreate.
type ResolveOptions struct {
	// PersistAddress writes the supplied address onto an existing customer.
	PersistAddress bool
}

// ICustomerService defines the interface for customer business logic.
type ICustomerService interface {
	ResolveOrCreate(ctx context.Context, identity models.CustomerIdentity, address *models.Address, opts ResolveOptions) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.Customer, error)
	Search(ctx context.Context, term string) ([]models.Customer, error)
}

// CustomerService implements ICustomerService.
type CustomerService struct {
	store  repository.IStore
	logger *slog.Logger
}

// NewCustomerService creates a new CustomerService instance.
func NewCustomerService(store repository.IStore, logger *slog.Logger) ICustomerService {
	return &CustomerService{store: store, logger: logger.With("component", "customer_service")}
}

// ResolveOrCreate finds the customer by id, then phone, then case-insensitive name, and creates one
// when nothing matches.
func (s *CustomerService) ResolveOrCreate(ctx context.Context, identity models.CustomerIdentity, address *models.Address, opts ResolveOptions) (*models.Customer, error) {
	var customer *models.Customer
	err := s.store.Transaction(ctx, func(tx repository.IStore) error {
		var err error
		customer, err = s.resolve(ctx, tx, identity, address, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// resolve runs on the caller's transaction so that finalize can share it.
func (s *CustomerService) resolve(ctx context.Context, tx repository.IStore, identity models.CustomerIdentity, address *models.Address, opts ResolveOptions) (*models.Customer, error) {
	repo := tx.Customers()
	phone := strings.TrimSpace(identity.Phone)
	name := strings.TrimSpace(identity.Name)

	// 1. Explicit id
	if identity.ID != 0 {
		customer, err := repo.FindByID(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		return s.withAddress(ctx, tx, customer, address, opts)
	}

	// 2. Phone
	if phone != "" {
		customer, err := repo.FindByPhone(ctx, phone)
		if err != nil {
			return nil, fmt.Errorf("failed to look up customer by phone: %w", err)
		}
		if customer != nil {
			return s.withAddress(ctx, tx, customer, address, opts)
		}
	}

	// 3. Name, best effort
	if name != "" {
		matches, err := repo.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up customer by name: %w", err)
		}
		if len(matches) > 1 {
			ids := make([]uint, 0, len(matches))
			for _, m := range matches {
				ids = append(ids, m.ID)
			}
			s.logger.Warn("ambiguous customer name, using lowest id", "name", name, "candidates", ids)
		}
		if len(matches) > 0 {
			customer := matches[0]
			return s.withAddress(ctx, tx, &customer, address, opts)
		}
	}

	if name == "" && phone == "" {
		return nil, models.InvalidInputf("customer identity needs an id, a phone or a name")
	}

	// 4. Create. The unique phone index decides concurrent creations.
	customer := &models.Customer{Name: name}
	if phone != "" {
		customer.Phone = &phone
	}
	if address != nil {
		address.Apply(customer)
	}
	err := tx.Transaction(ctx, func(sp repository.IStore) error {
		return sp.Customers().Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("customer created", "customer_id", customer.ID, "has_phone", customer.Phone != nil)
	return customer, nil
}

func (s *CustomerService) withAddress(ctx context.Context, tx repository.IStore, customer *models.Customer, address *models.Address, opts ResolveOptions) (*models.Customer, error) {
	if address == nil || !opts.PersistAddress {
		return customer, nil
	}
	address.Apply(customer)
	if err := tx.Customers().Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to persist customer address: %w", err)
	}
	s.logger.Info("customer address updated", "customer_id", customer.ID)
	return customer, nil
}

// Create stores a new customer.
func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	return s.store.Customers().Create(ctx, customer)
}

// Update replaces the customer's name, phone and address.
func (s *CustomerService) Update(ctx context.Context, customer *models.Customer) error {
	return s.store.Customers().Update(ctx, customer)
}

// Delete removes a customer that has no orders.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.store.Customers().Delete(ctx, id)
}

// Get returns the customer by id.
func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return s.store.Customers().FindByID(ctx, id)
}

// Search matches customers by name fragment or phone prefix.
func (s *CustomerService) Search(ctx context.Context, term string) ([]models.Customer, error) {
	return s.store.Customers().Search(ctx, term)
}
