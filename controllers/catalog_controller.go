package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vinicius342/AnotaJa-sub000/models"
	"github.com/vinicius342/AnotaJa-sub000/services"
)

// CatalogController handles HTTP requests for categories, additions, menu items and neighborhoods.
type CatalogController struct {
	catalog     services.ICatalogService
	complements services.IComplementService
}

// NewCatalogController creates a new CatalogController instance.
func NewCatalogController(catalog services.ICatalogService, complements services.IComplementService) *CatalogController {
	return &CatalogController{catalog: catalog, complements: complements}
}

type categoryRequest struct {
	Name string `json:"name"`
}

type additionRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type menuItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id"`
	Description string          `json:"description"`
}

type neighborhoodRequest struct {
	Name        string          `json:"name"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

// --- categories ---

func (c *CatalogController) ListCategories(ctx *fiber.Ctx) error {
	categories, err := c.catalog.ListCategories(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(categories)
}

func (c *CatalogController) GetCategory(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	category, err := c.catalog.GetCategory(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(category)
}

func (c *CatalogController) CreateCategory(ctx *fiber.Ctx) error {
	var request categoryRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	category := &models.Category{Name: request.Name}
	if err := c.catalog.CreateCategory(ctx.UserContext(), category); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(category)
}

func (c *CatalogController) UpdateCategory(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request categoryRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	category := &models.Category{ID: id, Name: request.Name}
	if err := c.catalog.RenameCategory(ctx.UserContext(), category); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(category)
}

func (c *CatalogController) DeleteCategory(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if err := c.catalog.DeleteCategory(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// SetCategoryAdditions handles PUT /categories/:id/additions. The body replaces the whole set.
func (c *CatalogController) SetCategoryAdditions(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request struct {
		AdditionIDs []uint `json:"addition_ids"`
	}
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	additions, err := c.catalog.SetCategoryAdditions(ctx.UserContext(), id, request.AdditionIDs)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(additions)
}

func (c *CatalogController) ListCategoryAdditions(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	additions, err := c.catalog.ListCategoryAdditions(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(additions)
}

// --- additions ---

func (c *CatalogController) ListAdditions(ctx *fiber.Ctx) error {
	additions, err := c.catalog.ListAdditions(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(additions)
}

func (c *CatalogController) GetAddition(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	addition, err := c.catalog.GetAddition(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(addition)
}

func (c *CatalogController) CreateAddition(ctx *fiber.Ctx) error {
	var request additionRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	addition := &models.Addition{Name: request.Name, Price: request.Price}
	if err := c.catalog.CreateAddition(ctx.UserContext(), addition); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(addition)
}

func (c *CatalogController) UpdateAddition(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request additionRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	addition := &models.Addition{ID: id, Name: request.Name, Price: request.Price}
	if err := c.catalog.UpdateAddition(ctx.UserContext(), addition); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(addition)
}

func (c *CatalogController) DeleteAddition(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if err := c.catalog.DeleteAddition(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// --- menu items ---

// ListMenuItems handles GET /menu-items, optionally filtered by ?category_id=.
func (c *CatalogController) ListMenuItems(ctx *fiber.Ctx) error {
	categoryID := ctx.QueryInt("category_id", 0)
	if categoryID < 0 {
		return badRequest(ctx, "invalid category_id")
	}
	items, err := c.catalog.ListMenuItems(ctx.UserContext(), uint(categoryID))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(items)
}

func (c *CatalogController) GetMenuItem(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	item, err := c.catalog.GetMenuItem(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(item)
}

func (c *CatalogController) CreateMenuItem(ctx *fiber.Ctx) error {
	var request menuItemRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	item := &models.MenuItem{
		Name:        request.Name,
		Price:       request.Price,
		CategoryID:  request.CategoryID,
		Description: request.Description,
	}
	if err := c.catalog.CreateMenuItem(ctx.UserContext(), item); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(item)
}

func (c *CatalogController) UpdateMenuItem(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request menuItemRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	item := &models.MenuItem{
		ID:          id,
		Name:        request.Name,
		Price:       request.Price,
		CategoryID:  request.CategoryID,
		Description: request.Description,
	}
	if err := c.catalog.UpdateMenuItem(ctx.UserContext(), item); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(item)
}

func (c *CatalogController) DeleteMenuItem(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if err := c.catalog.DeleteMenuItem(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// SetItemAdditions handles PUT /menu-items/:id/additions.
func (c *CatalogController) SetItemAdditions(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request struct {
		Additions []struct {
			AdditionID  uint `json:"addition_id"`
			IsMandatory bool `json:"is_mandatory"`
		} `json:"additions"`
	}
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	links := make([]models.ItemAddition, 0, len(request.Additions))
	for _, a := range request.Additions {
		links = append(links, models.ItemAddition{AdditionID: a.AdditionID, IsMandatory: a.IsMandatory})
	}
	stored, err := c.catalog.SetItemAdditions(ctx.UserContext(), id, links)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(stored)
}

// SetExclusiveComplements handles PUT /menu-items/:id/exclusive-complements.
func (c *CatalogController) SetExclusiveComplements(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request struct {
		Complements []struct {
			Name        string          `json:"name"`
			Price       decimal.Decimal `json:"price"`
			IsMandatory bool            `json:"is_mandatory"`
		} `json:"complements"`
	}
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	complements := make([]models.ExclusiveComplement, 0, len(request.Complements))
	for _, ec := range request.Complements {
		complements = append(complements, models.ExclusiveComplement{Name: ec.Name, Price: ec.Price, IsMandatory: ec.IsMandatory})
	}
	stored, err := c.catalog.SetExclusiveComplements(ctx.UserContext(), id, complements)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(stored)
}

// ResolveComplements handles GET /menu-items/:id/complements?category_id=.
func (c *CatalogController) ResolveComplements(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	categoryID := ctx.QueryInt("category_id", 0)
	if categoryID < 0 {
		return badRequest(ctx, "invalid category_id")
	}
	resolved, err := c.complements.Resolve(ctx.UserContext(), id, uint(categoryID))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(resolved)
}

// --- neighborhoods ---

func (c *CatalogController) ListNeighborhoods(ctx *fiber.Ctx) error {
	neighborhoods, err := c.catalog.ListNeighborhoods(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(neighborhoods)
}

func (c *CatalogController) GetNeighborhood(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	neighborhood, err := c.catalog.GetNeighborhood(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(neighborhood)
}

func (c *CatalogController) CreateNeighborhood(ctx *fiber.Ctx) error {
	var request neighborhoodRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	neighborhood := &models.Neighborhood{Name: request.Name, DeliveryFee: request.DeliveryFee}
	if err := c.catalog.CreateNeighborhood(ctx.UserContext(), neighborhood); err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(neighborhood)
}

func (c *CatalogController) UpdateNeighborhood(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	var request neighborhoodRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, invalidBody)
	}
	neighborhood := &models.Neighborhood{ID: id, Name: request.Name, DeliveryFee: request.DeliveryFee}
	if err := c.catalog.UpdateNeighborhood(ctx.UserContext(), neighborhood); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(neighborhood)
}

func (c *CatalogController) DeleteNeighborhood(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}
	if err := c.catalog.DeleteNeighborhood(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
