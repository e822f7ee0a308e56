package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType tells whether the order is delivered or picked up.
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// OrderStatus is the lifecycle state of a persisted order.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusPrinted   OrderStatus = "printed"
	OrderStatusClosed    OrderStatus = "closed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusOpen:      {OrderStatusPrinted: true, OrderStatusClosed: true, OrderStatusCancelled: true},
	OrderStatusPrinted:   {OrderStatusClosed: true, OrderStatusCancelled: true},
	OrderStatusClosed:    {},
	OrderStatusCancelled: {},
}

// CanTransition reports whether an order may move from one status to the other.
func CanTransition(from, to OrderStatus) bool {
	next := allowedTransitions[from]
	return next != nil && next[to]
}

// Order is the persisted order header. TotalAmount is derived at finalize time and never edited.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	CustomerID     uint            `json:"customer_id" gorm:"index;not null"`
	Customer       *Customer       `json:"customer,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Type           OrderType       `json:"type" gorm:"size:16;not null"`
	NeighborhoodID *uint           `json:"neighborhood_id,omitempty" gorm:"index"`
	Neighborhood   *Neighborhood   `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status         OrderStatus     `json:"status" gorm:"size:16;not null;index"`
	Notes          string          `json:"notes" gorm:"size:500"`
	Lines          []OrderLine     `json:"lines" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderLine is one menu item entry. ItemName and UnitPrice are snapshots taken at finalize time.
type OrderLine struct {
	ID          uint                  `json:"id" gorm:"primaryKey"`
	OrderID     uint                  `json:"order_id" gorm:"index;not null"`
	MenuItemID  *uint                 `json:"menu_item_id,omitempty" gorm:"index"`
	MenuItem    *MenuItem             `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	ItemName    string                `json:"item_name" gorm:"size:160;not null"`
	Quantity    int                   `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal       `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	LineTotal   decimal.Decimal       `json:"line_total" gorm:"type:decimal(10,2);not null"`
	Notes       string                `json:"notes" gorm:"size:300"`
	Complements []OrderLineComplement `json:"complements" gorm:"constraint:OnDelete:CASCADE"`
}

// OrderLineComplement snapshots a chosen complement. Quantity is a column rather than repeated rows.
type OrderLineComplement struct {
	ID                    uint                 `json:"id" gorm:"primaryKey"`
	OrderLineID           uint                 `json:"order_line_id" gorm:"index;not null"`
	AdditionID            *uint                `json:"addition_id,omitempty" gorm:"index"`
	Addition              *Addition            `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	ExclusiveComplementID *uint                `json:"exclusive_complement_id,omitempty" gorm:"index"`
	ExclusiveComplement   *ExclusiveComplement `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Name                  string               `json:"name" gorm:"size:120;not null"`
	UnitPrice             decimal.Decimal      `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity              int                  `json:"quantity" gorm:"not null;default:1"`
}

// FinalizedOrder is returned by a successful finalize.
type FinalizedOrder struct {
	OrderID     uint            `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// PricedOrder is the output of the pricing calculator.
type PricedOrder struct {
	LineTotals  []decimal.Decimal `json:"line_totals"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	DeliveryFee decimal.Decimal   `json:"delivery_fee"`
	GrandTotal  decimal.Decimal   `json:"grand_total"`
}
