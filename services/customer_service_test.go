package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/repository"
	"github.com/vinicius342/AnotaJa-sub000/services"
)

func TestCustomerService_ResolveByPhoneIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCustomerService(store, discard)
	ctx := context.Background()
	identity := models.CustomerIdentity{Phone: "11999990000", Name: "Ana"}

	first, err := svc.ResolveOrCreate(ctx, identity, nil, services.ResolveOptions{})
	require.NoError(t, err)
	second, err := svc.ResolveOrCreate(ctx, identity, nil, services.ResolveOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCustomerService_ConcurrentResolveCreatesOnce(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCustomerService(store, discard)
	ctx := context.Background()
	identity := models.CustomerIdentity{Phone: "11977776666", Name: "Bruno"}

	var wg sync.WaitGroup
	ids := make([]uint, 8)
	errs := make([]error, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := svc.ResolveOrCreate(ctx, identity, nil, services.ResolveOptions{})
			errs[i] = err
			if c != nil {
				ids[i] = c.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
}

func TestCustomerService_UnknownIDIsNotFound(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCustomerService(store, discard)

	_, err := svc.ResolveOrCreate(context.Background(), models.CustomerIdentity{ID: 77}, nil, services.ResolveOptions{})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCustomerService_AmbiguousNamePicksLowestID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	first := &models.Customer{Name: "Carla"}
	require.NoError(t, store.Customers().Create(ctx, first))
	require.NoError(t, store.Customers().Create(ctx, &models.Customer{Name: "CARLA"}))
	svc := services.NewCustomerService(store, discard)

	got, err := svc.ResolveOrCreate(ctx, models.CustomerIdentity{Name: "carla"}, nil, services.ResolveOptions{})

	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestCustomerService_AddressPersistedOnlyWhenAsked(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	m := seedMenu(t, store)
	existing := &models.Customer{Name: "Dani", Phone: ptr("11955554444"), Street: "Rua A", Number: "1"}
	require.NoError(t, store.Customers().Create(ctx, existing))
	svc := services.NewCustomerService(store, discard)
	address := &models.Address{Street: "Rua B", Number: "2", NeighborhoodID: &m.centro.ID}
	identity := models.CustomerIdentity{Phone: "11955554444"}

	_, err := svc.ResolveOrCreate(ctx, identity, address, services.ResolveOptions{})
	require.NoError(t, err)
	stored, err := svc.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rua A", stored.Street)

	_, err = svc.ResolveOrCreate(ctx, identity, address, services.ResolveOptions{PersistAddress: true})
	require.NoError(t, err)
	stored, err = svc.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rua B", stored.Street)
	assert.Equal(t, "2", stored.Number)
	require.NotNil(t, stored.NeighborhoodID)
	assert.Equal(t, m.centro.ID, *stored.NeighborhoodID)
}

func TestCustomerService_CreatesWithAddress(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCustomerService(store, discard)

	created, err := svc.ResolveOrCreate(context.Background(),
		models.CustomerIdentity{Name: "Eva", Phone: "21900001111"},
		&models.Address{Street: "Av. Brasil", Number: "100"},
		services.ResolveOptions{},
	)

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Av. Brasil", created.Street)
	require.NotNil(t, created.Phone)
	assert.Equal(t, "21900001111", *created.Phone)
}

func TestCustomerService_PhoneOnlyCreatesThenResolves(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCustomerService(store, discard)
	ctx := context.Background()

	first, err := svc.ResolveOrCreate(ctx, models.CustomerIdentity{Phone: "111"}, nil, services.ResolveOptions{})
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.NotNil(t, first.Phone)
	assert.Equal(t, "111", *first.Phone)
	assert.Empty(t, first.Name)

	second, err := svc.ResolveOrCreate(ctx, models.CustomerIdentity{Phone: "111"}, nil, services.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	matches, err := store.Customers().Search(ctx, "111")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCustomerService_RequiresSomeIdentity(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewCustomerService(store, discard)

	_, err := svc.ResolveOrCreate(context.Background(), models.CustomerIdentity{Name: "  ", Phone: " "}, nil, services.ResolveOptions{})

	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

// phoneBlindStore hides existing phones from lookups, as if another writer committed
// between the lookup and the insert.
type phoneBlindStore struct {
	repository.IStore
}

func (s phoneBlindStore) Customers() repository.ICustomerRepository {
	return phoneBlindCustomers{s.IStore.Customers()}
}

func (s phoneBlindStore) Transaction(ctx context.Context, fn func(tx repository.IStore) error) error {
	return s.IStore.Transaction(ctx, func(tx repository.IStore) error {
		return fn(phoneBlindStore{tx})
	})
}

type phoneBlindCustomers struct {
	repository.ICustomerRepository
}

func (phoneBlindCustomers) FindByPhone(context.Context, string) (*models.Customer, error) {
	return nil, nil
}

func TestCustomerService_LostRaceSurfacesDuplicatePhone(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Customers().Create(ctx, &models.Customer{Name: "Fabi", Phone: ptr("11922223333")}))
	svc := services.NewCustomerService(phoneBlindStore{store}, discard)

	_, err := svc.ResolveOrCreate(ctx, models.CustomerIdentity{Name: "Fábio", Phone: "11922223333"}, nil, services.ResolveOptions{})

	assert.ErrorIs(t, err, models.ErrDuplicatePhone)

	// a retry through the real store finds the winner
	winner, err := services.NewCustomerService(store, discard).
		ResolveOrCreate(ctx, models.CustomerIdentity{Name: "Fábio", Phone: "11922223333"}, nil, services.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Fabi", winner.Name)
}
