package services

import (
	"github.com/shopspring/decimal"

	"github.com/vinicius342/AnotaJa-sub000/models"
)

// PricingLine is the input of PriceOrder for one order line.
type PricingLine struct {
	Quantity    int
	UnitPrice   decimal.Decimal
	Complements []PricingComplement
}

// PricingComplement is a chosen complement. Its quantity applies once per line.
type PricingComplement struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// PriceOrder computes line totals, subtotal, delivery fee and grand total, rounded half-up to cents.
// delivery is nil for pickup. It has no side effects.
func PriceOrder(lines []PricingLine, delivery *models.Neighborhood) (models.PricedOrder, error) {
	priced := models.PricedOrder{
		LineTotals:  make([]decimal.Decimal, 0, len(lines)),
		Subtotal:    decimal.Zero,
		DeliveryFee: decimal.Zero,
	}

	for i, line := range lines {
		if line.Quantity <= 0 {
			return models.PricedOrder{}, models.InvalidQuantityOrPricef("line %d: quantity %d", i+1, line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return models.PricedOrder{}, models.InvalidQuantityOrPricef("line %d: unit price %s", i+1, line.UnitPrice)
		}

		total := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		for j, c := range line.Complements {
			if c.Quantity <= 0 {
				return models.PricedOrder{}, models.InvalidQuantityOrPricef("line %d complement %d: quantity %d", i+1, j+1, c.Quantity)
			}
			if c.UnitPrice.IsNegative() {
				return models.PricedOrder{}, models.InvalidQuantityOrPricef("line %d complement %d: unit price %s", i+1, j+1, c.UnitPrice)
			}
			total = total.Add(c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity))))
		}

		total = total.Round(2)
		priced.LineTotals = append(priced.LineTotals, total)
		priced.Subtotal = priced.Subtotal.Add(total)
	}

	if delivery != nil {
		if delivery.DeliveryFee.IsNegative() {
			return models.PricedOrder{}, models.InvalidQuantityOrPricef("delivery fee %s", delivery.DeliveryFee)
		}
		priced.DeliveryFee = delivery.DeliveryFee.Round(2)
	}
	priced.Subtotal = priced.Subtotal.Round(2)
	priced.GrandTotal = priced.Subtotal.Add(priced.DeliveryFee)
	return priced, nil
}
