package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// translateError maps gorm errors (TranslateError is on) to domain errors.
func translateError(err error, entity, name string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &models.DuplicateNameError{Entity: entity, Name: name}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s %q: %w", entity, name, models.ErrReferentialConflict)
	}
	return err
}

func notFoundOr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NotFoundf("%s %d", entity, id)
	}
	return err
}

func validName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.InvalidInputf("%s name is required", entity)
	}
	return name, nil
}

func validAmount(entity, field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return models.InvalidQuantityOrPricef("%s %s %s is negative", entity, field, v.String())
	}
	return nil
}

// nameTaken checks case-insensitive uniqueness of the name column, ignoring exceptID.
func nameTaken(db *gorm.DB, model any, name string, exceptID uint) (bool, error) {
	var count int64
	q := db.Model(model).Where("LOWER(name) = LOWER(?)", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// findByName returns nil, nil when no row matches.
func findByName[T any](db *gorm.DB, name string) (*T, error) {
	var row T
	err := db.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).Order("id").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// requireAll fails with NotFound unless every id exists in the model's table.
func requireAll(db *gorm.DB, model any, entity string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	if err := db.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	for _, id := range ids {
		if !have[id] {
			return models.NotFoundf("%s %d", entity, id)
		}
	}
	return nil
}
