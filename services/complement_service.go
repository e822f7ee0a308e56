package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/repository"
)

// IComplementService resolves the complements an item offers.
type IComplementService interface {
	Resolve(ctx context.Context, itemID, categoryID uint) ([]models.ResolvedComplement, error)
}

// ComplementService implements IComplementService.
type ComplementService struct {
	store  repository.IStore
	logger *slog.Logger
}

// NewComplementService creates a new ComplementService instance.
func NewComplementService(store repository.IStore, logger *slog.Logger) IComplementService {
	return &ComplementService{store: store, logger: logger.With("component", "complement_service")}
}

// Resolve merges the category's additions, the item's own links and its exclusive complements.
// categoryID 0 means the item's own category. All reads share one transaction.
func (s *ComplementService) Resolve(ctx context.Context, itemID, categoryID uint) ([]models.ResolvedComplement, error) {
	var resolved []models.ResolvedComplement
	err := s.store.Transaction(ctx, func(tx repository.IStore) error {
		var err error
		resolved, err = resolveComplements(ctx, tx, itemID, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("complements resolved", "item_id", itemID, "category_id", categoryID, "count", len(resolved))
	return resolved, nil
}

// complementSet accumulates entries keyed by ComplementRef.Key, keeping insertion order.
type complementSet struct {
	entries map[string]*models.ResolvedComplement
	keys    []string
}

func newComplementSet() *complementSet {
	return &complementSet{
		entries: make(map[string]*models.ResolvedComplement),
	}
}

func (cs *complementSet) add(c models.ResolvedComplement) *models.ResolvedComplement {
	key := c.Ref().Key()
	if existing, ok := cs.entries[key]; ok {
		return existing
	}
	entry := c
	cs.entries[key] = &entry
	cs.keys = append(cs.keys, key)
	return &entry
}

func (cs *complementSet) sorted() []models.ResolvedComplement {
	out := make([]models.ResolvedComplement, 0, len(cs.keys))
	for _, key := range cs.keys {
		out = append(out, *cs.entries[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Mandatory != b.Mandatory {
			return a.Mandatory
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return an < bn
		}
		return a.Ref().Key() < b.Ref().Key()
	})
	return out
}

func resolveComplements(ctx context.Context, store repository.IStore, itemID, categoryID uint) ([]models.ResolvedComplement, error) {
	item, err := store.MenuItems().FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if categoryID == 0 {
		categoryID = item.CategoryID
	}

	categoryAdditions, err := store.Categories().ListAdditions(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	links, err := store.MenuItems().ListItemAdditions(ctx, itemID)
	if err != nil {
		return nil, err
	}
	exclusives, err := store.MenuItems().ListExclusiveComplements(ctx, itemID)
	if err != nil {
		return nil, err
	}

	set := newComplementSet()

	// 1. Category additions are optional by default.
	for _, a := range categoryAdditions {
		set.add(models.ResolvedComplement{
			AdditionID: a.ID,
			Name:       a.Name,
			Price:      a.Price,
			Mandatory:  false,
			Source:     models.SourceCategory,
		})
	}

	// 2. Item links override the flag or bring in additions the category does not offer.
	for _, link := range links {
		if link.Addition == nil {
			continue
		}
		entry := set.add(models.ResolvedComplement{
			AdditionID: link.AdditionID,
			Name:       link.Addition.Name,
			Price:      link.Addition.Price,
			Source:     models.SourceItem,
		})
		entry.Mandatory = link.IsMandatory
	}

	// 3. Exclusive complements are entries of their own, even when a global addition shares the name.
	for _, ex := range exclusives {
		set.add(models.ResolvedComplement{
			ExclusiveID: ex.ID,
			Name:        ex.Name,
			Price:       ex.Price,
			Mandatory:   ex.IsMandatory,
			Source:      models.SourceExclusive,
		})
	}

	return set.sorted(), nil
}
