package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// IAdditionRepository defines the interface for global addition data operations.
type IAdditionRepository interface {
	Create(ctx context.Context, addition *models.Addition) error
	Update(ctx context.Context, addition *models.Addition) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Addition, error)
	FindByName(ctx context.Context, name string) (*models.Addition, error)
	List(ctx context.Context) ([]models.Addition, error)
}

// AdditionRepository implements IAdditionRepository for GORM.
type AdditionRepository struct {
	DB *gorm.DB
}

// NewAdditionRepository creates a new AdditionRepository instance.
func NewAdditionRepository(db *gorm.DB) IAdditionRepository {
	return &AdditionRepository{DB: db}
}

func (r *AdditionRepository) Create(ctx context.Context, addition *models.Addition) error {
	name, err := validName("addition", addition.Name)
	if err != nil {
		return err
	}
	if err := validAmount("addition", "price", addition.Price); err != nil {
		return err
	}
	addition.Name = name
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Addition{}, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &models.DuplicateNameError{Entity: "addition", Name: name}
		}
		return translateError(tx.Create(addition).Error, "addition", name)
	})
}

// Update changes name and price. Persisted orders keep the price they were sold at.
func (r *AdditionRepository) Update(ctx context.Context, addition *models.Addition) error {
	name, err := validName("addition", addition.Name)
	if err != nil {
		return err
	}
	if err := validAmount("addition", "price", addition.Price); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Addition
		if err := tx.First(&existing, addition.ID).Error; err != nil {
			return notFoundOr(err, "addition", addition.ID)
		}
		taken, err := nameTaken(tx, &models.Addition{}, name, existing.ID)
		if err != nil {
			return err
		}
		if taken {
			return &models.DuplicateNameError{Entity: "addition", Name: name}
		}
		existing.Name = name
		existing.Price = addition.Price
		if err := tx.Save(&existing).Error; err != nil {
			return translateError(err, "addition", name)
		}
		*addition = existing
		return nil
	})
}

// Delete refuses to remove an addition still linked to a category or item.
func (r *AdditionRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var addition models.Addition
		if err := tx.First(&addition, id).Error; err != nil {
			return notFoundOr(err, "addition", id)
		}
		var links int64
		if err := tx.Model(&models.CategoryAddition{}).Where("addition_id = ?", id).Count(&links).Error; err != nil {
			return err
		}
		var itemLinks int64
		if err := tx.Model(&models.ItemAddition{}).Where("addition_id = ?", id).Count(&itemLinks).Error; err != nil {
			return err
		}
		if links+itemLinks > 0 {
			return fmt.Errorf("addition %q is linked to %d categories and %d items: %w",
				addition.Name, links, itemLinks, models.ErrReferentialConflict)
		}
		if err := tx.Model(&models.OrderLineComplement{}).Where("addition_id = ?", id).
			Update("addition_id", nil).Error; err != nil {
			return err
		}
		return translateError(tx.Delete(&addition).Error, "addition", addition.Name)
	})
}

func (r *AdditionRepository) FindByID(ctx context.Context, id uint) (*models.Addition, error) {
	var addition models.Addition
	if err := r.DB.WithContext(ctx).First(&addition, id).Error; err != nil {
		return nil, notFoundOr(err, "addition", id)
	}
	return &addition, nil
}

// FindByName matches case-insensitively and returns nil, nil when absent.
func (r *AdditionRepository) FindByName(ctx context.Context, name string) (*models.Addition, error) {
	return findByName[models.Addition](r.DB.WithContext(ctx), name)
}

func (r *AdditionRepository) List(ctx context.Context) ([]models.Addition, error) {
	var additions []models.Addition
	err := r.DB.WithContext(ctx).Order("name").Find(&additions).Error
	return additions, err
}
