package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// INeighborhoodRepository defines the interface for delivery area data operations.
type INeighborhoodRepository interface {
	Create(ctx context.Context, neighborhood *models.Neighborhood) error
	Update(ctx context.Context, neighborhood *models.Neighborhood) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Neighborhood, error)
	FindByName(ctx context.Context, name string) (*models.Neighborhood, error)
	List(ctx context.Context) ([]models.Neighborhood, error)
}

// NeighborhoodRepository implements INeighborhoodRepository for GORM.
type NeighborhoodRepository struct {
	DB *gorm.DB
}

// NewNeighborhoodRepository creates a new NeighborhoodRepository instance.
func NewNeighborhoodRepository(db *gorm.DB) INeighborhoodRepository {
	return &NeighborhoodRepository{DB: db}
}

func (r *NeighborhoodRepository) Create(ctx context.Context, neighborhood *models.Neighborhood) error {
	name, err := validName("neighborhood", neighborhood.Name)
	if err != nil {
		return err
	}
	if err := validAmount("neighborhood", "delivery fee", neighborhood.DeliveryFee); err != nil {
		return err
	}
	neighborhood.Name = name
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Neighborhood{}, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &models.DuplicateNameError{Entity: "neighborhood", Name: name}
		}
		return translateError(tx.Create(neighborhood).Error, "neighborhood", name)
	})
}

func (r *NeighborhoodRepository) Update(ctx context.Context, neighborhood *models.Neighborhood) error {
	name, err := validName("neighborhood", neighborhood.Name)
	if err != nil {
		return err
	}
	if err := validAmount("neighborhood", "delivery fee", neighborhood.DeliveryFee); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Neighborhood
		if err := tx.First(&existing, neighborhood.ID).Error; err != nil {
			return notFoundOr(err, "neighborhood", neighborhood.ID)
		}
		taken, err := nameTaken(tx, &models.Neighborhood{}, name, existing.ID)
		if err != nil {
			return err
		}
		if taken {
			return &models.DuplicateNameError{Entity: "neighborhood", Name: name}
		}
		existing.Name = name
		existing.DeliveryFee = neighborhood.DeliveryFee
		if err := tx.Save(&existing).Error; err != nil {
			return translateError(err, "neighborhood", name)
		}
		*neighborhood = existing
		return nil
	})
}

// Delete refuses to remove a neighborhood that customers still live in.
func (r *NeighborhoodRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var neighborhood models.Neighborhood
		if err := tx.First(&neighborhood, id).Error; err != nil {
			return notFoundOr(err, "neighborhood", id)
		}
		var customers int64
		if err := tx.Model(&models.Customer{}).Where("neighborhood_id = ?", id).Count(&customers).Error; err != nil {
			return err
		}
		if customers > 0 {
			return fmt.Errorf("neighborhood %q has %d customers: %w", neighborhood.Name, customers, models.ErrReferentialConflict)
		}
		if err := tx.Model(&models.Order{}).Where("neighborhood_id = ?", id).Update("neighborhood_id", nil).Error; err != nil {
			return err
		}
		return translateError(tx.Delete(&neighborhood).Error, "neighborhood", neighborhood.Name)
	})
}

func (r *NeighborhoodRepository) FindByID(ctx context.Context, id uint) (*models.Neighborhood, error) {
	var neighborhood models.Neighborhood
	if err := r.DB.WithContext(ctx).First(&neighborhood, id).Error; err != nil {
		return nil, notFoundOr(err, "neighborhood", id)
	}
	return &neighborhood, nil
}

// FindByName matches case-insensitively and returns nil, nil when absent.
func (r *NeighborhoodRepository) FindByName(ctx context.Context, name string) (*models.Neighborhood, error) {
	return findByName[models.Neighborhood](r.DB.WithContext(ctx), name)
}

func (r *NeighborhoodRepository) List(ctx context.Context) ([]models.Neighborhood, error) {
	var neighborhoods []models.Neighborhood
	err := r.DB.WithContext(ctx).Order("name").Find(&neighborhoods).Error
	return neighborhoods, err
}
