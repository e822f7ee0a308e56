package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/services"
)

// OrderController handles HTTP requests related to orders.
type OrderController struct {
	orderService services.IOrderService
}

// NewOrderController creates a new OrderController instance.
func NewOrderController(svc services.IOrderService) *OrderController {
	return &OrderController{orderService: svc}
}

// CreateOrder handles the POST /orders endpoint.
func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var request services.FinalizeRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}

	finalized, err := c.orderService.Finalize(ctx.UserContext(), request)
	if err != nil {
		// the order is saved, only the receipt is missing
		if finalized != nil && errors.Is(err, models.ErrReceiptNotDispatched) {
			return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
				"order_id":     finalized.OrderID,
				"total_amount": finalized.TotalAmount,
				"warning":      err.Error(),
			})
		}
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(finalized)
}

// QuoteOrder handles POST /orders/quote. Nothing is written.
func (c *OrderController) QuoteOrder(ctx *fiber.Ctx) error {
	var request services.FinalizeRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	priced, err := c.orderService.Quote(ctx.UserContext(), request)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(priced)
}

func (c *OrderController) GetOrder(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	order, err := c.orderService.Get(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(order)
}

// UpdateStatus handles PATCH /orders/:id/status.
func (c *OrderController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := ctx.BodyParser(&request); err != nil || request.Status == "" {
		return badRequest(ctx, invalidBody)
	}
	order, err := c.orderService.UpdateStatus(ctx.UserContext(), id, request.Status)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(order)
}

// GetReceipt handles GET /orders/:id/receipt.
func (c *OrderController) GetReceipt(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	receipt, err := c.orderService.Receipt(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(receipt)
}

// PrintOrder handles POST /orders/:id/print.
func (c *OrderController) PrintOrder(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	receipt, err := c.orderService.Print(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, models.ErrReceiptNotDispatched) {
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusAccepted).JSON(receipt)
}
