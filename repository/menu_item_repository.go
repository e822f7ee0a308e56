package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// IMenuItemRepository defines the interface for menu item data operations,
// including the per-item complement links and exclusive complements.
type IMenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.MenuItem, error)
	FindByName(ctx context.Context, name string) (*models.MenuItem, error)
	List(ctx context.Context) ([]models.MenuItem, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]models.MenuItem, error)
	SetItemAdditions(ctx context.Context, itemID uint, links []models.ItemAddition) error
	ListItemAdditions(ctx context.Context, itemID uint) ([]models.ItemAddition, error)
	SetExclusiveComplements(ctx context.Context, itemID uint, complements []models.ExclusiveComplement) error
	ListExclusiveComplements(ctx context.Context, itemID uint) ([]models.ExclusiveComplement, error)
}

// MenuItemRepository implements IMenuItemRepository for GORM.
type MenuItemRepository struct {
	DB *gorm.DB
}

// NewMenuItemRepository creates a new MenuItemRepository instance.
func NewMenuItemRepository(db *gorm.DB) IMenuItemRepository {
	return &MenuItemRepository{DB: db}
}

func (r *MenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	name, err := validName("menu item", item.Name)
	if err != nil {
		return err
	}
	if err := validAmount("menu item", "price", item.Price); err != nil {
		return err
	}
	item.Name = name
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.Category{}, "category", []uint{item.CategoryID}); err != nil {
			return err
		}
		taken, err := nameTaken(tx, &models.MenuItem{}, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &models.DuplicateNameError{Entity: "menu item", Name: name}
		}
		return translateError(tx.Create(item).Error, "menu item", name)
	})
}

// Update changes name, price, category and description of an item.
func (r *MenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	name, err := validName("menu item", item.Name)
	if err != nil {
		return err
	}
	if err := validAmount("menu item", "price", item.Price); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.MenuItem
		if err := tx.First(&existing, item.ID).Error; err != nil {
			return notFoundOr(err, "menu item", item.ID)
		}
		if err := requireAll(tx, &models.Category{}, "category", []uint{item.CategoryID}); err != nil {
			return err
		}
		taken, err := nameTaken(tx, &models.MenuItem{}, name, existing.ID)
		if err != nil {
			return err
		}
		if taken {
			return &models.DuplicateNameError{Entity: "menu item", Name: name}
		}
		existing.Name = name
		existing.Price = item.Price
		existing.CategoryID = item.CategoryID
		existing.Description = item.Description
		if err := tx.Save(&existing).Error; err != nil {
			return translateError(err, "menu item", name)
		}
		*item = existing
		return nil
	})
}

// Delete removes the item, its links and its exclusive complements. Order lines keep their snapshots.
func (r *MenuItemRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.MenuItem{}, "menu item", []uint{id}); err != nil {
			return err
		}
		return deleteMenuItems(tx, []uint{id})
	})
}

// deleteMenuItems must run inside a transaction.
func deleteMenuItems(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var exclusiveIDs []uint
	if err := tx.Model(&models.ExclusiveComplement{}).Where("menu_item_id IN ?", ids).Pluck("id", &exclusiveIDs).Error; err != nil {
		return err
	}
	if len(exclusiveIDs) > 0 {
		if err := tx.Model(&models.OrderLineComplement{}).Where("exclusive_complement_id IN ?", exclusiveIDs).
			Update("exclusive_complement_id", nil).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(&models.OrderLine{}).Where("menu_item_id IN ?", ids).Update("menu_item_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Where("menu_item_id IN ?", ids).Delete(&models.ItemAddition{}).Error; err != nil {
		return err
	}
	if err := tx.Where("menu_item_id IN ?", ids).Delete(&models.ExclusiveComplement{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.MenuItem{}).Error
}

func (r *MenuItemRepository) FindByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFoundOr(err, "menu item", id)
	}
	return &item, nil
}

// FindByName matches case-insensitively and returns nil, nil when absent.
func (r *MenuItemRepository) FindByName(ctx context.Context, name string) (*models.MenuItem, error) {
	return findByName[models.MenuItem](r.DB.WithContext(ctx), name)
}

func (r *MenuItemRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.DB.WithContext(ctx).Order("name").Find(&items).Error
	return items, err
}

func (r *MenuItemRepository) ListByCategory(ctx context.Context, categoryID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.DB.WithContext(ctx).Where("category_id = ?", categoryID).Order("name").Find(&items).Error
	return items, err
}

// SetItemAdditions replaces the item's complement links. A repeated addition keeps its last flag.
func (r *MenuItemRepository) SetItemAdditions(ctx context.Context, itemID uint, links []models.ItemAddition) error {
	byAddition := make(map[uint]bool, len(links))
	ids := make([]uint, 0, len(links))
	for _, l := range links {
		if l.AdditionID == 0 {
			return models.InvalidInputf("item addition without addition id")
		}
		if _, seen := byAddition[l.AdditionID]; !seen {
			ids = append(ids, l.AdditionID)
		}
		byAddition[l.AdditionID] = l.IsMandatory
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.MenuItem{}, "menu item", []uint{itemID}); err != nil {
			return err
		}
		if err := requireAll(tx, &models.Addition{}, "addition", ids); err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", itemID).Delete(&models.ItemAddition{}).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		rows := make([]models.ItemAddition, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, models.ItemAddition{MenuItemID: itemID, AdditionID: id, IsMandatory: byAddition[id]})
		}
		return translateError(tx.Create(&rows).Error, "item addition", "")
	})
}

func (r *MenuItemRepository) ListItemAdditions(ctx context.Context, itemID uint) ([]models.ItemAddition, error) {
	db := r.DB.WithContext(ctx)
	if err := requireAll(db, &models.MenuItem{}, "menu item", []uint{itemID}); err != nil {
		return nil, err
	}
	var links []models.ItemAddition
	err := db.Preload("Addition").Where("menu_item_id = ?", itemID).Order("addition_id").Find(&links).Error
	return links, err
}

// SetExclusiveComplements replaces the item's exclusive complements. Rows are matched by name
// (case-insensitive) so that a complement that survives the edit keeps its id.
func (r *MenuItemRepository) SetExclusiveComplements(ctx context.Context, itemID uint, complements []models.ExclusiveComplement) error {
	wanted := make(map[string]models.ExclusiveComplement, len(complements))
	order := make([]string, 0, len(complements))
	for _, c := range complements {
		name, err := validName("exclusive complement", c.Name)
		if err != nil {
			return err
		}
		if err := validAmount("exclusive complement", "price", c.Price); err != nil {
			return err
		}
		key := strings.ToLower(name)
		if _, dup := wanted[key]; dup {
			return &models.DuplicateNameError{Entity: "exclusive complement", Name: name}
		}
		c.Name = name
		wanted[key] = c
		order = append(order, key)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, &models.MenuItem{}, "menu item", []uint{itemID}); err != nil {
			return err
		}
		var existing []models.ExclusiveComplement
		if err := tx.Where("menu_item_id = ?", itemID).Find(&existing).Error; err != nil {
			return err
		}

		kept := make(map[string]bool, len(existing))
		var removed []uint
		for _, row := range existing {
			key := strings.ToLower(row.Name)
			want, ok := wanted[key]
			if !ok {
				removed = append(removed, row.ID)
				continue
			}
			kept[key] = true
			row.Name = want.Name
			row.Price = want.Price
			row.IsMandatory = want.IsMandatory
			if err := tx.Save(&row).Error; err != nil {
				return translateError(err, "exclusive complement", row.Name)
			}
		}

		if len(removed) > 0 {
			if err := tx.Model(&models.OrderLineComplement{}).Where("exclusive_complement_id IN ?", removed).
				Update("exclusive_complement_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", removed).Delete(&models.ExclusiveComplement{}).Error; err != nil {
				return err
			}
		}

		for _, key := range order {
			if kept[key] {
				continue
			}
			row := wanted[key]
			row.ID = 0
			row.MenuItemID = itemID
			if err := tx.Create(&row).Error; err != nil {
				return translateError(err, "exclusive complement", row.Name)
			}
		}
		return nil
	})
}

func (r *MenuItemRepository) ListExclusiveComplements(ctx context.Context, itemID uint) ([]models.ExclusiveComplement, error) {
	db := r.DB.WithContext(ctx)
	if err := requireAll(db, &models.MenuItem{}, "menu item", []uint{itemID}); err != nil {
		return nil, err
	}
	var complements []models.ExclusiveComplement
	err := db.Where("menu_item_id = ?", itemID).Order("LOWER(name)").Order("id").Find(&complements).Error
	return complements, err
}
