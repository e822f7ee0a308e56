package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// ICategoryRepository defines the interface for category data operations.
type ICategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	SetAdditions(ctx context.Context, categoryID uint, additionIDs []uint) error
	ListAdditions(ctx context.Context, categoryID uint) ([]models.Addition, error)
}

// CategoryRepository implements ICategoryRepository for GORM.
type CategoryRepository struct {
	DB *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *gorm.DB) ICategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	name, err := validName("category", category.Name)
	if err != nil {
		return err
	}
	category.Name = name
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Category{}, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &models.DuplicateNameError{Entity: "category", Name: name}
		}
		return translateError(tx.Create(category).Error, "category", name)
	})
}

// Update renames the category.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	name, err := validName("category", category.Name)
	if err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Category
		if err := tx.First(&existing, category.ID).Error; err != nil {
			return notFoundOr(err, "category", category.ID)
		}
		taken, err := nameTaken(tx, &models.Category{}, name, existing.ID)
		if err != nil {
			return err
		}
		if taken {
			return &models.DuplicateNameError{Entity: "category", Name: name}
		}
		existing.Name = name
		if err := tx.Save(&existing).Error; err != nil {
			return translateError(err, "category", name)
		}
		*category = existing
		return nil
	})
}

// Delete removes the category together with its menu items, their links and exclusive complements.
// Global additions are kept. Order lines keep their snapshots.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return notFoundOr(err, "category", id)
		}

		var itemIDs []uint
		if err := tx.Model(&models.MenuItem{}).Where("category_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if err := deleteMenuItems(tx, itemIDs); err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.CategoryAddition{}).Error; err != nil {
			return err
		}
		return translateError(tx.Delete(&category).Error, "category", category.Name)
	})
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFoundOr(err, "category", id)
	}
	return &category, nil
}

// FindByName matches case-insensitively and returns nil, nil when absent.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return findByName[models.Category](r.DB.WithContext(ctx), name)
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

// SetAdditions replaces the set of additions offered by the category.
func (r *CategoryRepository) SetAdditions(ctx context.Context, categoryID uint, additionIDs []uint) error {
	ids := uniqueIDs(additionIDs)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.Category{}, "category", []uint{categoryID}); err != nil {
			return err
		}
		if err := requireAll(tx, &models.Addition{}, "addition", ids); err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.CategoryAddition{}).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		links := make([]models.CategoryAddition, 0, len(ids))
		for _, id := range ids {
			links = append(links, models.CategoryAddition{CategoryID: categoryID, AdditionID: id})
		}
		return translateError(tx.Create(&links).Error, "category addition", "")
	})
}

// ListAdditions returns the additions linked to the category, ordered by name.
func (r *CategoryRepository) ListAdditions(ctx context.Context, categoryID uint) ([]models.Addition, error) {
	db := r.DB.WithContext(ctx)
	if err := requireAll(db, &models.Category{}, "category", []uint{categoryID}); err != nil {
		return nil, err
	}
	var additions []models.Addition
	err := db.
		Joins("JOIN category_additions ca ON ca.addition_id = additions.id").
		Where("ca.category_id = ?", categoryID).
		Order("additions.name").
		Find(&additions).Error
	return additions, err
}
