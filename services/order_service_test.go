package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/services"
)

func TestOrderService_Finalize_PickupTotal(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	mockPublisher := new(MockReceiptPublisher)
	mockPublisher.On("Publish", mock.Anything, mock.AnythingOfType("models.Receipt")).Return(nil)
	svc := services.NewOrderService(store, mockPublisher, "kitchen", discard)
	ctx := context.Background()

	finalized, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana", Phone: "11999990000"},
		Type:     models.OrderTypePickup,
		Lines:    []services.FinalizeLine{{MenuItemID: m.burger.ID, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, "20.00", finalized.TotalAmount.StringFixed(2))

	order, err := svc.Get(ctx, finalized.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusOpen, order.Status)
	assert.Equal(t, "20.00", order.TotalAmount.StringFixed(2))
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Burger", order.Lines[0].ItemName)
	assert.Equal(t, "10.00", order.Lines[0].UnitPrice.StringFixed(2))

	mockPublisher.AssertExpectations(t)
	receipt := mockPublisher.Calls[0].Arguments.Get(1).(models.Receipt)
	assert.Equal(t, finalized.OrderID, receipt.OrderID)
	assert.Equal(t, "kitchen", receipt.Printer)
	assert.Equal(t, "Ana", receipt.Customer.Name)
}

func TestOrderService_Finalize_DeliveryVersusPickup(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)
	ctx := context.Background()
	lines := []services.FinalizeLine{{MenuItemID: m.burger.ID, Quantity: 1}}

	delivery, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer:       models.CustomerIdentity{Name: "Ana"},
		Type:           models.OrderTypeDelivery,
		NeighborhoodID: m.centro.ID,
		Lines:          lines,
	})
	require.NoError(t, err)
	pickup, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana"},
		Type:     models.OrderTypePickup,
		Lines:    lines,
	})
	require.NoError(t, err)

	assert.Equal(t, "15.00", delivery.TotalAmount.StringFixed(2))
	assert.Equal(t, "10.00", pickup.TotalAmount.StringFixed(2))

	order, err := svc.Get(ctx, delivery.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "5.00", order.DeliveryFee.StringFixed(2))
	require.NotNil(t, order.NeighborhoodID)
	assert.Equal(t, m.centro.ID, *order.NeighborhoodID)
}

func TestOrderService_Finalize_MandatoryComplement(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)
	ctx := context.Background()
	req := services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Bia", Phone: "11988887777"},
		Lines:    []services.FinalizeLine{{MenuItemID: m.hotdog.ID, Quantity: 1}},
	}

	_, err := svc.Finalize(ctx, req)

	require.ErrorIs(t, err, models.ErrMissingMandatoryComplement)
	var missing *models.MissingMandatoryComplementError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, m.hotdog.ID, missing.ItemID)
	assert.Equal(t, m.cheese.ID, missing.Complement.AdditionID)
	// nothing was written, not even the new customer
	found, err := store.Customers().FindByPhone(ctx, "11988887777")
	require.NoError(t, err)
	assert.Nil(t, found)

	req.Lines[0].Complements = []models.SelectedComplement{{ComplementRef: models.ComplementRef{AdditionID: m.cheese.ID}, Quantity: 1}}
	finalized, err := svc.Finalize(ctx, req)
	require.NoError(t, err)
	// 12.50 + 2.00
	assert.Equal(t, "14.50", finalized.TotalAmount.StringFixed(2))

	order, err := svc.Get(ctx, finalized.OrderID)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "14.50", order.Lines[0].LineTotal.StringFixed(2))
	require.Len(t, order.Lines[0].Complements, 1)
	assert.Equal(t, "Cheese", order.Lines[0].Complements[0].Name)
	assert.Equal(t, "2.00", order.Lines[0].Complements[0].UnitPrice.StringFixed(2))
}

func TestOrderService_Finalize_RejectsComplementNotOffered(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)

	_, err := svc.Finalize(context.Background(), services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana"},
		Lines: []services.FinalizeLine{{
			MenuItemID:  m.soda.ID,
			Quantity:    1,
			Complements: []models.SelectedComplement{{ComplementRef: models.ComplementRef{AdditionID: m.bacon.ID}}},
		}},
	})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOrderService_Finalize_ExclusiveComplementQuantities(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)
	ctx := context.Background()

	finalized, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Caio"},
		Lines: []services.FinalizeLine{{
			MenuItemID: m.burger.ID,
			Quantity:   1,
			Complements: []models.SelectedComplement{
				{ComplementRef: models.ComplementRef{ExclusiveID: m.extraMeat.ID}, Quantity: 2},
				{ComplementRef: models.ComplementRef{AdditionID: m.bacon.ID}},
			},
		}},
	})

	require.NoError(t, err)
	// 10.00 + 2*6.00 + 3.00
	assert.Equal(t, "25.00", finalized.TotalAmount.StringFixed(2))
	order, err := svc.Get(ctx, finalized.OrderID)
	require.NoError(t, err)
	complements := order.Lines[0].Complements
	require.Len(t, complements, 2)
	require.NotNil(t, complements[0].ExclusiveComplementID)
	assert.Equal(t, m.extraMeat.ID, *complements[0].ExclusiveComplementID)
	assert.Equal(t, 2, complements[0].Quantity)
	require.NotNil(t, complements[1].AdditionID)
	assert.Equal(t, 1, complements[1].Quantity)
}

func TestOrderService_Finalize_InvalidQuantity(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)

	_, err := svc.Finalize(context.Background(), services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana"},
		Lines:    []services.FinalizeLine{{MenuItemID: m.burger.ID, Quantity: 0}},
	})

	assert.ErrorIs(t, err, models.ErrInvalidQuantityOrPrice)
}

func TestOrderService_Finalize_DeliveryFallsBackToCustomerNeighborhood(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	ctx := context.Background()
	customer := &models.Customer{Name: "Duda", NeighborhoodID: &m.centro.ID}
	require.NoError(t, store.Customers().Create(ctx, customer))
	svc := services.NewOrderService(store, nil, "", discard)
	req := services.FinalizeRequest{
		Customer: models.CustomerIdentity{ID: customer.ID},
		Type:     models.OrderTypeDelivery,
		Lines:    []services.FinalizeLine{{MenuItemID: m.soda.ID, Quantity: 1}},
	}

	finalized, err := svc.Finalize(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "10.00", finalized.TotalAmount.StringFixed(2))

	req.Customer = models.CustomerIdentity{Name: "Sem Bairro"}
	_, err = svc.Finalize(ctx, req)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOrderService_SnapshotSurvivesPriceChange(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)
	ctx := context.Background()

	finalized, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana"},
		Lines:    []services.FinalizeLine{{MenuItemID: m.burger.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	m.burger.Price = money("99.00")
	require.NoError(t, store.MenuItems().Update(ctx, m.burger))

	receipt, err := svc.Receipt(ctx, finalized.OrderID)
	require.NoError(t, err)
	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, "10.00", receipt.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "10.00", receipt.Total.StringFixed(2))
}

func TestOrderService_Quote_DoesNotWrite(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)
	ctx := context.Background()

	priced, err := svc.Quote(ctx, services.FinalizeRequest{
		Customer:       models.CustomerIdentity{Name: "Novo", Phone: "11900000000"},
		NeighborhoodID: m.centro.ID,
		Lines: []services.FinalizeLine{
			{MenuItemID: m.burger.ID, Quantity: 2},
			{MenuItemID: m.soda.ID, Quantity: 1},
		},
	})

	require.NoError(t, err)
	require.Len(t, priced.LineTotals, 2)
	assert.Equal(t, "20.00", priced.LineTotals[0].StringFixed(2))
	assert.Equal(t, "25.00", priced.Subtotal.StringFixed(2))
	assert.Equal(t, "30.00", priced.GrandTotal.StringFixed(2))
	found, err := store.Customers().FindByPhone(ctx, "11900000000")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestOrderService_PublishFailureKeepsOrder(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	mockPublisher := new(MockReceiptPublisher)
	mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	svc := services.NewOrderService(store, mockPublisher, "", discard)
	ctx := context.Background()

	finalized, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana"},
		Lines:    []services.FinalizeLine{{MenuItemID: m.soda.ID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, models.ErrReceiptNotDispatched)
	assert.Contains(t, err.Error(), "broker down")
	require.NotNil(t, finalized)
	_, getErr := svc.Get(ctx, finalized.OrderID)
	assert.NoError(t, getErr)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)
	ctx := context.Background()
	finalized, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana"},
		Lines:    []services.FinalizeLine{{MenuItemID: m.soda.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	order, err := svc.UpdateStatus(ctx, finalized.OrderID, models.OrderStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusClosed, order.Status)

	_, err = svc.UpdateStatus(ctx, finalized.OrderID, models.OrderStatusOpen)
	assert.ErrorIs(t, err, models.ErrInvalidStatusTransition)

	_, err = svc.UpdateStatus(ctx, 999, models.OrderStatusClosed)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOrderService_PrintMarksPrinted(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	mockPublisher := new(MockReceiptPublisher)
	mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	svc := services.NewOrderService(store, mockPublisher, "bar", discard)
	ctx := context.Background()
	finalized, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana"},
		Lines:    []services.FinalizeLine{{MenuItemID: m.soda.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	receipt, err := svc.Print(ctx, finalized.OrderID)

	require.NoError(t, err)
	assert.Equal(t, "15.00", receipt.Total.StringFixed(2))
	order, err := svc.Get(ctx, finalized.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPrinted, order.Status)
	mockPublisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestOrderService_ListByCustomer(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)
	ctx := context.Background()
	identity := models.CustomerIdentity{Name: "Ana", Phone: "11911110000"}
	for i := 0; i < 2; i++ {
		_, err := svc.Finalize(ctx, services.FinalizeRequest{
			Customer: identity,
			Lines:    []services.FinalizeLine{{MenuItemID: m.soda.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}
	customer, err := store.Customers().FindByPhone(ctx, identity.Phone)
	require.NoError(t, err)
	require.NotNil(t, customer)

	orders, err := svc.ListByCustomer(ctx, customer.ID)

	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderService_Finalize_FailureLeavesNoNewCustomer(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	svc := services.NewOrderService(store, nil, "", discard)
	ctx := context.Background()

	// the customer is new and has no neighborhood, so delivery cannot be priced
	_, err := svc.Finalize(ctx, services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Nova", Phone: "11955554444"},
		Type:     models.OrderTypeDelivery,
		Lines:    []services.FinalizeLine{{MenuItemID: m.burger.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, models.ErrNotFound)

	customer, err := store.Customers().FindByPhone(ctx, "11955554444")
	require.NoError(t, err)
	assert.Nil(t, customer)
	matches, err := store.Customers().Search(ctx, "Nova")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestOrderService_ExclusiveSharingGlobalNameIsSelectable(t *testing.T) {
	store := newTestStore(t)
	m := seedMenu(t, store)
	ctx := context.Background()
	require.NoError(t, store.MenuItems().SetExclusiveComplements(ctx, m.burger.ID, []models.ExclusiveComplement{
		{Name: "bacon", Price: money("5.00")},
	}))
	exclusives, err := store.MenuItems().ListExclusiveComplements(ctx, m.burger.ID)
	require.NoError(t, err)
	require.Len(t, exclusives, 1)
	svc := services.NewOrderService(store, nil, "", discard)
	req := services.FinalizeRequest{
		Customer: models.CustomerIdentity{Name: "Ana"},
		Type:     models.OrderTypePickup,
		Lines: []services.FinalizeLine{{
			MenuItemID: m.burger.ID,
			Quantity:   1,
			Complements: []models.SelectedComplement{
				{ComplementRef: models.ComplementRef{ExclusiveID: exclusives[0].ID}, Quantity: 1},
				{ComplementRef: models.ComplementRef{AdditionID: m.bacon.ID}, Quantity: 1},
			},
		}},
	}

	quote, err := svc.Quote(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "18.00", quote.GrandTotal.StringFixed(2))

	finalized, err := svc.Finalize(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "18.00", finalized.TotalAmount.StringFixed(2))
}
