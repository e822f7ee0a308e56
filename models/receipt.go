package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the data handed to the external printing renderer. It carries no formatting.
type Receipt struct {
	OrderID     uint            `json:"order_id"`
	CreatedAt   time.Time       `json:"created_at"`
	Printer     string          `json:"printer,omitempty"`
	Type        OrderType       `json:"type"`
	Customer    ReceiptCustomer `json:"customer"`
	Lines       []ReceiptLine   `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	Notes       string          `json:"notes,omitempty"`
}

type ReceiptCustomer struct {
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Reference    string `json:"reference,omitempty"`
}

type ReceiptLine struct {
	Name        string              `json:"name"`
	Quantity    int                 `json:"quantity"`
	UnitPrice   decimal.Decimal     `json:"unit_price"`
	Complements []ReceiptComplement `json:"complements,omitempty"`
	Total       decimal.Decimal     `json:"total"`
	Notes       string              `json:"notes,omitempty"`
}

type ReceiptComplement struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewReceipt builds a receipt from a persisted order. customer and neighborhood may be nil.
func NewReceipt(order *Order, customer *Customer, neighborhood *Neighborhood, printer string) Receipt {
	r := Receipt{
		OrderID:     order.ID,
		CreatedAt:   order.CreatedAt,
		Printer:     printer,
		Type:        order.Type,
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Total:       order.TotalAmount,
		Notes:       order.Notes,
		Lines:       make([]ReceiptLine, 0, len(order.Lines)),
	}
	if customer != nil {
		r.Customer = ReceiptCustomer{
			Name:      customer.Name,
			Street:    customer.Street,
			Number:    customer.Number,
			Reference: customer.Reference,
		}
		if customer.Phone != nil {
			r.Customer.Phone = *customer.Phone
		}
	}
	if neighborhood != nil {
		r.Customer.Neighborhood = neighborhood.Name
	}
	for _, line := range order.Lines {
		rl := ReceiptLine{
			Name:      line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.LineTotal,
			Notes:     line.Notes,
		}
		for _, c := range line.Complements {
			rl.Complements = append(rl.Complements, ReceiptComplement{
				Name:      c.Name,
				Quantity:  c.Quantity,
				UnitPrice: c.UnitPrice,
			})
		}
		r.Lines = append(r.Lines, rl)
	}
	return r
}
