package controllers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts every handler on the router.
func RegisterRoutes(router fiber.Router, catalog *CatalogController, customers *CustomerController, orders *OrderController) {
	categories := router.Group("/categories")
	categories.Get("/", catalog.ListCategories)
	categories.Post("/", catalog.CreateCategory)
	categories.Get("/:id", catalog.GetCategory)
	categories.Put("/:id", catalog.UpdateCategory)
	categories.Delete("/:id", catalog.DeleteCategory)
	categories.Get("/:id/additions", catalog.ListCategoryAdditions)
	categories.Put("/:id/additions", catalog.SetCategoryAdditions)

	additions := router.Group("/additions")
	additions.Get("/", catalog.ListAdditions)
	additions.Post("/", catalog.CreateAddition)
	additions.Get("/:id", catalog.GetAddition)
	additions.Put("/:id", catalog.UpdateAddition)
	additions.Delete("/:id", catalog.DeleteAddition)

	items := router.Group("/menu-items")
	items.Get("/", catalog.ListMenuItems)
	items.Post("/", catalog.CreateMenuItem)
	items.Get("/:id", catalog.GetMenuItem)
	items.Put("/:id", catalog.UpdateMenuItem)
	items.Delete("/:id", catalog.DeleteMenuItem)
	items.Put("/:id/additions", catalog.SetItemAdditions)
	items.Put("/:id/exclusive-complements", catalog.SetExclusiveComplements)
	items.Get("/:id/complements", catalog.ResolveComplements)

	neighborhoods := router.Group("/neighborhoods")
	neighborhoods.Get("/", catalog.ListNeighborhoods)
	neighborhoods.Post("/", catalog.CreateNeighborhood)
	neighborhoods.Get("/:id", catalog.GetNeighborhood)
	neighborhoods.Put("/:id", catalog.UpdateNeighborhood)
	neighborhoods.Delete("/:id", catalog.DeleteNeighborhood)

	cust := router.Group("/customers")
	cust.Get("/", customers.Search)
	cust.Post("/", customers.Create)
	cust.Post("/resolve", customers.Resolve)
	cust.Get("/:id", customers.Get)
	cust.Put("/:id", customers.Update)
	cust.Delete("/:id", customers.Delete)
	cust.Get("/:id/orders", customers.Orders)

	ord := router.Group("/orders")
	ord.Post("/", orders.CreateOrder)
	ord.Post("/quote", orders.QuoteOrder)
	ord.Get("/:id", orders.GetOrder)
	ord.Patch("/:id/status", orders.UpdateStatus)
	ord.Get("/:id/receipt", orders.GetReceipt)
	ord.Post("/:id/print", orders.PrintOrder)
}
