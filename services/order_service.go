package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/repository"
)

// FinalizeLine is one line of an order draft.
type FinalizeLine struct {
	MenuItemID uint `json:"menu_item_id"`
	// CategoryID 0 means the item's own category.
	CategoryID  uint                        `json:"category_id,omitempty"`
	Quantity    int                         `json:"quantity"`
	Complements []models.SelectedComplement `json:"complements"`
	Notes       string                      `json:"notes"`
}

// FinalizeRequest is an order draft as composed by the operator.
type FinalizeRequest struct {
	Customer       models.CustomerIdentity `json:"customer"`
	Address        *models.Address         `json:"address,omitempty"`
	PersistAddress bool                    `json:"persist_address"`
	Type           models.OrderType        `json:"type"`
	NeighborhoodID uint                    `json:"neighborhood_id,omitempty"`
	Lines          []FinalizeLine          `json:"lines"`
	Notes          string                  `json:"notes"`
}

// IOrderService defines the interface for order-related business logic.
type IOrderService interface {
	Finalize(ctx context.Context, req FinalizeRequest) (*models.FinalizedOrder, error)
	Quote(ctx context.Context, req FinalizeRequest) (*models.PricedOrder, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	Receipt(ctx context.Context, id uint) (*models.Receipt, error)
	Print(ctx context.Context, id uint) (*models.Receipt, error)
}

// OrderService implements IOrderService.
type OrderService struct {
	store     repository.IStore
	customers *CustomerService
	publisher IReceiptPublisher
	printer   string
	logger    *slog.Logger
}

// NewOrderService creates a new OrderService instance. publisher may be nil, then receipts are not dispatched.
func NewOrderService(store repository.IStore, publisher IReceiptPublisher, printer string, logger *slog.Logger) IOrderService {
	return &OrderService{
		store:     store,
		customers: &CustomerService{store: store, logger: logger.With("component", "customer_service")},
		publisher: publisher,
		printer:   printer,
		logger:    logger.With("component", "order_service"),
	}
}

type chosenComplement struct {
	resolved models.ResolvedComplement
	quantity int
}

// lineDraft is a validated line with prices read in the current transaction.
type lineDraft struct {
	item        *models.MenuItem
	quantity    int
	notes       string
	complements []chosenComplement
}

func (d lineDraft) pricing() PricingLine {
	pl := PricingLine{Quantity: d.quantity, UnitPrice: d.item.Price}
	for _, c := range d.complements {
		pl.Complements = append(pl.Complements, PricingComplement{UnitPrice: c.resolved.Price, Quantity: c.quantity})
	}
	return pl
}

// Finalize validates the draft, resolves the customer, prices and persists the order in one transaction.
// When the receipt cannot be dispatched the order stays saved and is returned with an error
// wrapping ErrReceiptNotDispatched.
func (s *OrderService) Finalize(ctx context.Context, req FinalizeRequest) (*models.FinalizedOrder, error) {
	orderType, err := requestType(req)
	if err != nil {
		return nil, err
	}

	var receipt models.Receipt
	var order *models.Order
	err = s.store.Transaction(ctx, func(tx repository.IStore) error {
		// 1. Validate lines against the live catalog
		drafts, err := prepareLines(ctx, tx, req.Lines)
		if err != nil {
			return err
		}

		// 2. Resolve the customer
		customer, err := s.customers.resolve(ctx, tx, req.Customer, req.Address, ResolveOptions{PersistAddress: req.PersistAddress})
		if err != nil {
			return err
		}

		// 3. Delivery area
		neighborhood, err := deliveryNeighborhood(ctx, tx, orderType, req, customer)
		if err != nil {
			return err
		}

		// 4. Price
		pricingLines := make([]PricingLine, 0, len(drafts))
		for _, d := range drafts {
			pricingLines = append(pricingLines, d.pricing())
		}
		priced, err := PriceOrder(pricingLines, neighborhood)
		if err != nil {
			return err
		}

		// 5. Persist header, lines and complements
		order = buildOrder(customer, orderType, neighborhood, req.Notes, drafts, priced)
		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}

		receipt = models.NewReceipt(order, customer, neighborhood, s.printer)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order finalized",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"type", order.Type,
		"lines", len(order.Lines),
		"total", order.TotalAmount.StringFixed(2),
	)
	finalized := &models.FinalizedOrder{OrderID: order.ID, TotalAmount: order.TotalAmount}

	// 6. Hand the receipt to the printing side. The order is already committed.
	if err := s.dispatch(ctx, receipt); err != nil {
		return finalized, err
	}
	return finalized, nil
}

// Quote prices a draft without writing anything. Drafts are always checked against the live catalog.
func (s *OrderService) Quote(ctx context.Context, req FinalizeRequest) (*models.PricedOrder, error) {
	orderType, err := requestType(req)
	if err != nil {
		return nil, err
	}

	var priced models.PricedOrder
	err = s.store.Transaction(ctx, func(tx repository.IStore) error {
		drafts, err := prepareLines(ctx, tx, req.Lines)
		if err != nil {
			return err
		}
		customer, err := lookupCustomer(ctx, tx, req.Customer)
		if err != nil {
			return err
		}
		neighborhood, err := deliveryNeighborhood(ctx, tx, orderType, req, customer)
		if err != nil {
			return err
		}
		pricingLines := make([]PricingLine, 0, len(drafts))
		for _, d := range drafts {
			pricingLines = append(pricingLines, d.pricing())
		}
		priced, err = PriceOrder(pricingLines, neighborhood)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &priced, nil
}

// Get returns the order with its lines, complements, customer and neighborhood.
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	return s.store.Orders().FindByID(ctx, id)
}

// ListByCustomer returns the customer's orders, newest first.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	return s.store.Orders().ListByCustomer(ctx, customerID)
}

// UpdateStatus moves the order along open -> printed -> closed, or to cancelled.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	var order *models.Order
	err := s.store.Transaction(ctx, func(tx repository.IStore) error {
		current, err := tx.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !models.CanTransition(current.Status, status) {
			return fmt.Errorf("order %d from %s to %s: %w", id, current.Status, status, models.ErrInvalidStatusTransition)
		}
		if err := tx.Orders().UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		order, err = tx.Orders().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order status changed", "order_id", id, "status", status)
	return order, nil
}

// Receipt rebuilds the receipt from the stored snapshots. The catalog is not consulted.
func (s *OrderService) Receipt(ctx context.Context, id uint) (*models.Receipt, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	receipt := models.NewReceipt(order, order.Customer, order.Neighborhood, s.printer)
	return &receipt, nil
}

// Print dispatches the stored receipt again and marks an open order as printed.
func (s *OrderService) Print(ctx context.Context, id uint) (*models.Receipt, error) {
	receipt, err := s.Receipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.dispatch(ctx, *receipt); err != nil {
		return receipt, err
	}
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return receipt, err
	}
	if order.Status == models.OrderStatusOpen {
		if _, err := s.UpdateStatus(ctx, id, models.OrderStatusPrinted); err != nil {
			return receipt, err
		}
	}
	return receipt, nil
}

func (s *OrderService) dispatch(ctx context.Context, receipt models.Receipt) error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Publish(ctx, receipt); err != nil {
		s.logger.Error("receipt not dispatched", "order_id", receipt.OrderID, "error", err)
		return fmt.Errorf("order %d: %w: %w", receipt.OrderID, models.ErrReceiptNotDispatched, err)
	}
	return nil
}

func requestType(req FinalizeRequest) (models.OrderType, error) {
	switch req.Type {
	case models.OrderTypeDelivery, models.OrderTypePickup:
		return req.Type, nil
	case "":
		if req.NeighborhoodID != 0 {
			return models.OrderTypeDelivery, nil
		}
		return models.OrderTypePickup, nil
	default:
		return "", models.InvalidInputf("unknown order type %q", req.Type)
	}
}

// prepareLines loads each item, resolves what it offers and checks the selections against it.
func prepareLines(ctx context.Context, tx repository.IStore, lines []FinalizeLine) ([]lineDraft, error) {
	if len(lines) == 0 {
		return nil, models.InvalidInputf("order must contain at least one line")
	}

	drafts := make([]lineDraft, 0, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, models.InvalidQuantityOrPricef("line %d: quantity %d", i+1, line.Quantity)
		}
		item, err := tx.MenuItems().FindByID(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		offered, err := resolveComplements(ctx, tx, item.ID, line.CategoryID)
		if err != nil {
			return nil, err
		}
		byKey := make(map[string]models.ResolvedComplement, len(offered))
		for _, c := range offered {
			byKey[c.Ref().Key()] = c
		}

		draft := lineDraft{item: item, quantity: line.Quantity, notes: line.Notes}
		selected := make(map[string]int, len(line.Complements))
		for _, sel := range line.Complements {
			if !sel.Valid() {
				return nil, models.InvalidInputf("line %d: complement needs exactly one of addition_id or exclusive_id", i+1)
			}
			if sel.Quantity < 0 {
				return nil, models.InvalidQuantityOrPricef("line %d: complement %s quantity %d", i+1, sel.Key(), sel.Quantity)
			}
			qty := sel.Quantity
			if qty == 0 {
				qty = 1
			}
			key := sel.Key()
			resolved, ok := byKey[key]
			if !ok {
				return nil, models.NotFoundf("complement %s offered for item %d", key, item.ID)
			}
			if _, seen := selected[key]; !seen {
				draft.complements = append(draft.complements, chosenComplement{resolved: resolved})
			}
			selected[key] += qty
		}
		for j := range draft.complements {
			draft.complements[j].quantity = selected[draft.complements[j].resolved.Ref().Key()]
		}

		for _, c := range offered {
			if c.Mandatory && selected[c.Ref().Key()] == 0 {
				return nil, &models.MissingMandatoryComplementError{ItemID: item.ID, Complement: c.Ref(), Name: c.Name}
			}
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// lookupCustomer is the read-only part of customer resolution. It returns nil when nothing matches.
func lookupCustomer(ctx context.Context, tx repository.IStore, identity models.CustomerIdentity) (*models.Customer, error) {
	if identity.ID != 0 {
		return tx.Customers().FindByID(ctx, identity.ID)
	}
	if identity.Phone != "" {
		return tx.Customers().FindByPhone(ctx, identity.Phone)
	}
	return nil, nil
}

// deliveryNeighborhood returns nil for pickup. For delivery the request wins over the address,
// which wins over the customer's registered neighborhood.
func deliveryNeighborhood(ctx context.Context, tx repository.IStore, orderType models.OrderType, req FinalizeRequest, customer *models.Customer) (*models.Neighborhood, error) {
	if orderType != models.OrderTypeDelivery {
		return nil, nil
	}
	id := req.NeighborhoodID
	if id == 0 && req.Address != nil && req.Address.NeighborhoodID != nil {
		id = *req.Address.NeighborhoodID
	}
	if id == 0 && customer != nil && customer.NeighborhoodID != nil {
		id = *customer.NeighborhoodID
	}
	if id == 0 {
		return nil, models.NotFoundf("delivery neighborhood")
	}
	return tx.Neighborhoods().FindByID(ctx, id)
}

func buildOrder(customer *models.Customer, orderType models.OrderType, neighborhood *models.Neighborhood, notes string, drafts []lineDraft, priced models.PricedOrder) *models.Order {
	order := &models.Order{
		CustomerID:  customer.ID,
		Type:        orderType,
		DeliveryFee: priced.DeliveryFee,
		Subtotal:    priced.Subtotal,
		TotalAmount: priced.GrandTotal,
		Status:      models.OrderStatusOpen,
		Notes:       notes,
		Lines:       make([]models.OrderLine, 0, len(drafts)),
	}
	if neighborhood != nil {
		id := neighborhood.ID
		order.NeighborhoodID = &id
	}

	for i, d := range drafts {
		itemID := d.item.ID
		line := models.OrderLine{
			MenuItemID: &itemID,
			ItemName:   d.item.Name,
			Quantity:   d.quantity,
			UnitPrice:  d.item.Price,
			LineTotal:  priced.LineTotals[i],
			Notes:      d.notes,
		}
		for _, c := range d.complements {
			snap := models.OrderLineComplement{
				Name:      c.resolved.Name,
				UnitPrice: c.resolved.Price,
				Quantity:  c.quantity,
			}
			if c.resolved.AdditionID != 0 {
				id := c.resolved.AdditionID
				snap.AdditionID = &id
			} else {
				id := c.resolved.ExclusiveID
				snap.ExclusiveComplementID = &id
			}
			line.Complements = append(line.Complements, snap)
		}
		order.Lines = append(order.Lines, line)
	}
	return order
}
