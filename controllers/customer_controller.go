package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/services"
)

// CustomerController handles HTTP requests related to customers.
type CustomerController struct {
	customerService services.ICustomerService
	orderService    services.IOrderService
}

// NewCustomerController creates a new CustomerController instance.
func NewCustomerController(customers services.ICustomerService, orders services.IOrderService) *CustomerController {
	return &CustomerController{customerService: customers, orderService: orders}
}

type customerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	models.Address
}

func (r customerRequest) customer(id uint) *models.Customer {
	c := &models.Customer{ID: id, Name: r.Name}
	if r.Phone != "" {
		phone := r.Phone
		c.Phone = &phone
	}
	r.Address.Apply(c)
	return c
}

// Search handles GET /customers?q=.
func (c *CustomerController) Search(ctx *fiber.Ctx) error {
	customers, err := c.customerService.Search(ctx.UserContext(), ctx.Query("q"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(customers)
}

func (c *CustomerController) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	customer, err := c.customerService.Get(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(customer)
}

func (c *CustomerController) Create(ctx *fiber.Ctx) error {
	var request customerRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	customer := request.customer(0)
	if err := c.customerService.Create(ctx.UserContext(), customer); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(customer)
}

func (c *CustomerController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request customerRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	customer := request.customer(id)
	if err := c.customerService.Update(ctx.UserContext(), customer); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(customer)
}

func (c *CustomerController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if err := c.customerService.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Resolve handles POST /customers/resolve.
func (c *CustomerController) Resolve(ctx *fiber.Ctx) error {
	var request struct {
		Customer       models.CustomerIdentity `json:"customer"`
		Address        *models.Address         `json:"address"`
		PersistAddress bool                    `json:"persist_address"`
	}
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	customer, err := c.customerService.ResolveOrCreate(ctx.UserContext(), request.Customer, request.Address,
		services.ResolveOptions{PersistAddress: request.PersistAddress})
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(customer)
}

// Orders handles GET /customers/:id/orders.
func (c *CustomerController) Orders(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	orders, err := c.orderService.ListByCustomer(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(orders)
}
