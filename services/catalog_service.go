package services

import (
	"context"
	"log/slog"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/repository"
)

// ICatalogService defines the catalog maintenance operations used by the back office.
type ICatalogService interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	RenameCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	SetCategoryAdditions(ctx context.Context, categoryID uint, additionIDs []uint) ([]models.Addition, error)
	ListCategoryAdditions(ctx context.Context, categoryID uint) ([]models.Addition, error)

	CreateAddition(ctx context.Context, addition *models.Addition) error
	UpdateAddition(ctx context.Context, addition *models.Addition) error
	DeleteAddition(ctx context.Context, id uint) error
	GetAddition(ctx context.Context, id uint) (*models.Addition, error)
	ListAdditions(ctx context.Context) ([]models.Addition, error)

	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uint) error
	GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, categoryID uint) ([]models.MenuItem, error)
	SetItemAdditions(ctx context.Context, itemID uint, links []models.ItemAddition) ([]models.ItemAddition, error)
	SetExclusiveComplements(ctx context.Context, itemID uint, complements []models.ExclusiveComplement) ([]models.ExclusiveComplement, error)

	CreateNeighborhood(ctx context.Context, neighborhood *models.Neighborhood) error
	UpdateNeighborhood(ctx context.Context, neighborhood *models.Neighborhood) error
	DeleteNeighborhood(ctx context.Context, id uint) error
	GetNeighborhood(ctx context.Context, id uint) (*models.Neighborhood, error)
	ListNeighborhoods(ctx context.Context) ([]models.Neighborhood, error)
}

// CatalogService implements ICatalogService on top of the store.
type CatalogService struct {
	store  repository.IStore
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(store repository.IStore, logger *slog.Logger) ICatalogService {
	return &CatalogService{store: store, logger: logger.With("component", "catalog_service")}
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.store.Categories().Create(ctx, category); err != nil {
		return err
	}
	s.logger.Info("category created", "category_id", category.ID, "name", category.Name)
	return nil
}

func (s *CatalogService) RenameCategory(ctx context.Context, category *models.Category) error {
	return s.store.Categories().Update(ctx, category)
}

// DeleteCategory also removes every item of the category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.store.Categories().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id)
	return nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.store.Categories().FindByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories().List(ctx)
}

// SetCategoryAdditions replaces the set and returns it as stored.
func (s *CatalogService) SetCategoryAdditions(ctx context.Context, categoryID uint, additionIDs []uint) ([]models.Addition, error) {
	var additions []models.Addition
	err := s.store.Transaction(ctx, func(tx repository.IStore) error {
		if err := tx.Categories().SetAdditions(ctx, categoryID, additionIDs); err != nil {
			return err
		}
		var err error
		additions, err = tx.Categories().ListAdditions(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("category additions replaced", "category_id", categoryID, "count", len(additions))
	return additions, nil
}

func (s *CatalogService) ListCategoryAdditions(ctx context.Context, categoryID uint) ([]models.Addition, error) {
	return s.store.Categories().ListAdditions(ctx, categoryID)
}

func (s *CatalogService) CreateAddition(ctx context.Context, addition *models.Addition) error {
	if err := s.store.Additions().Create(ctx, addition); err != nil {
		return err
	}
	s.logger.Info("addition created", "addition_id", addition.ID, "name", addition.Name)
	return nil
}

func (s *CatalogService) UpdateAddition(ctx context.Context, addition *models.Addition) error {
	return s.store.Additions().Update(ctx, addition)
}

func (s *CatalogService) DeleteAddition(ctx context.Context, id uint) error {
	return s.store.Additions().Delete(ctx, id)
}

func (s *CatalogService) GetAddition(ctx context.Context, id uint) (*models.Addition, error) {
	return s.store.Additions().FindByID(ctx, id)
}

func (s *CatalogService) ListAdditions(ctx context.Context) ([]models.Addition, error) {
	return s.store.Additions().List(ctx)
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := s.store.MenuItems().Create(ctx, item); err != nil {
		return err
	}
	s.logger.Info("menu item created", "item_id", item.ID, "name", item.Name, "category_id", item.CategoryID)
	return nil
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return s.store.MenuItems().Update(ctx, item)
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, id uint) error {
	if err := s.store.MenuItems().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("menu item deleted", "item_id", id)
	return nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	return s.store.MenuItems().FindByID(ctx, id)
}

// ListMenuItems lists every item, or only those of categoryID when it is not zero.
func (s *CatalogService) ListMenuItems(ctx context.Context, categoryID uint) ([]models.MenuItem, error) {
	if categoryID != 0 {
		return s.store.MenuItems().ListByCategory(ctx, categoryID)
	}
	return s.store.MenuItems().List(ctx)
}

func (s *CatalogService) SetItemAdditions(ctx context.Context, itemID uint, links []models.ItemAddition) ([]models.ItemAddition, error) {
	var stored []models.ItemAddition
	err := s.store.Transaction(ctx, func(tx repository.IStore) error {
		if err := tx.MenuItems().SetItemAdditions(ctx, itemID, links); err != nil {
			return err
		}
		var err error
		stored, err = tx.MenuItems().ListItemAdditions(ctx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("item additions replaced", "item_id", itemID, "count", len(stored))
	return stored, nil
}

func (s *CatalogService) SetExclusiveComplements(ctx context.Context, itemID uint, complements []models.ExclusiveComplement) ([]models.ExclusiveComplement, error) {
	var stored []models.ExclusiveComplement
	err := s.store.Transaction(ctx, func(tx repository.IStore) error {
		if err := tx.MenuItems().SetExclusiveComplements(ctx, itemID, complements); err != nil {
			return err
		}
		var err error
		stored, err = tx.MenuItems().ListExclusiveComplements(ctx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("exclusive complements replaced", "item_id", itemID, "count", len(stored))
	return stored, nil
}

func (s *CatalogService) CreateNeighborhood(ctx context.Context, neighborhood *models.Neighborhood) error {
	return s.store.Neighborhoods().Create(ctx, neighborhood)
}

func (s *CatalogService) UpdateNeighborhood(ctx context.Context, neighborhood *models.Neighborhood) error {
	return s.store.Neighborhoods().Update(ctx, neighborhood)
}

func (s *CatalogService) DeleteNeighborhood(ctx context.Context, id uint) error {
	return s.store.Neighborhoods().Delete(ctx, id)
}

func (s *CatalogService) GetNeighborhood(ctx context.Context, id uint) (*models.Neighborhood, error) {
	return s.store.Neighborhoods().FindByID(ctx, id)
}

func (s *CatalogService) ListNeighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	return s.store.Neighborhoods().List(ctx)
}
