package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	applog "github.com/vinicius342/AnotaJa-sub000/logger"
	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/repository"
)

var discard = applog.Discard()

func newTestStore(t *testing.T) repository.IStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := repository.OpenSQLite(dsn, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repository.NewStore(db)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T { return &v }

// menu is a small catalog shared by the service tests.
type menu struct {
	snacks    *models.Category
	drinks    *models.Category
	bacon     *models.Addition
	cheese    *models.Addition
	egg       *models.Addition
	burger    *models.MenuItem // 10.00, category snacks
	hotdog    *models.MenuItem // 12.50, category snacks, cheese is mandatory
	soda      *models.MenuItem // 5.00, category drinks
	centro    *models.Neighborhood
	doneness  models.ExclusiveComplement
	extraMeat models.ExclusiveComplement
}

func seedMenu(t *testing.T, store repository.IStore) *menu {
	t.Helper()
	ctx := context.Background()
	m := &menu{
		snacks: &models.Category{Name: "Snacks"},
		drinks: &models.Category{Name: "Drinks"},
		bacon:  &models.Addition{Name: "Bacon", Price: money("3.00")},
		cheese: &models.Addition{Name: "Cheese", Price: money("2.00")},
		egg:    &models.Addition{Name: "Egg", Price: money("1.50")},
		centro: &models.Neighborhood{Name: "Centro", DeliveryFee: money("5.00")},
	}
	require.NoError(t, store.Categories().Create(ctx, m.snacks))
	require.NoError(t, store.Categories().Create(ctx, m.drinks))
	for _, a := range []*models.Addition{m.bacon, m.cheese, m.egg} {
		require.NoError(t, store.Additions().Create(ctx, a))
	}
	require.NoError(t, store.Categories().SetAdditions(ctx, m.snacks.ID, []uint{m.bacon.ID, m.cheese.ID}))
	require.NoError(t, store.Neighborhoods().Create(ctx, m.centro))

	m.burger = &models.MenuItem{Name: "Burger", Price: money("10.00"), CategoryID: m.snacks.ID}
	m.hotdog = &models.MenuItem{Name: "Hot dog", Price: money("12.50"), CategoryID: m.snacks.ID}
	m.soda = &models.MenuItem{Name: "Soda", Price: money("5.00"), CategoryID: m.drinks.ID}
	for _, item := range []*models.MenuItem{m.burger, m.hotdog, m.soda} {
		require.NoError(t, store.MenuItems().Create(ctx, item))
	}
	require.NoError(t, store.MenuItems().SetItemAdditions(ctx, m.hotdog.ID, []models.ItemAddition{
		{AdditionID: m.cheese.ID, IsMandatory: true},
	}))
	require.NoError(t, store.MenuItems().SetExclusiveComplements(ctx, m.burger.ID, []models.ExclusiveComplement{
		{Name: "Doneness", Price: money("0"), IsMandatory: false},
		{Name: "Extra meat", Price: money("6.00")},
	}))
	exclusives, err := store.MenuItems().ListExclusiveComplements(ctx, m.burger.ID)
	require.NoError(t, err)
	require.Len(t, exclusives, 2)
	m.doneness, m.extraMeat = exclusives[0], exclusives[1]
	return m
}

// MockReceiptPublisher is a mock implementation of services.IReceiptPublisher.
type MockReceiptPublisher struct {
	mock.Mock
}

func (m *MockReceiptPublisher) Publish(ctx context.Context, receipt models.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func uintString(v uint) string { return fmt.Sprint(v) }
