package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"inventario/internal/expiry"
	"inventario/internal/inventory"
	"inventario/internal/middleware"
	"inventario/internal/models"
	"inventario/internal/services"
)

// ProductHandler handles HTTP requests for products and the views derived from them.
type ProductHandler struct {
	service  *services.ProductService
	location *time.Location
}

// NewProductHandler creates a new ProductHandler. Expiration dates are read in loc.
func NewProductHandler(service *services.ProductService, loc *time.Location) *ProductHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ProductHandler{
		service:  service,
		location: loc,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)

	router.Get("/categories", h.HandleCategories)
	router.Get("/alerts/expiring", h.HandleExpiringSoon)
	router.Get("/alerts/expired", h.HandleExpired)
	router.Get("/shopping-list", h.HandleShoppingList)
	router.Get("/reports/summary", h.HandleSummary)
}

// ProductView is a product as shown in the list, with its badges.
type ProductView struct {
	models.Product
	ExpirationStatus expiry.Status `json:"expirationStatus"`
	LowStock         bool          `json:"lowStock"`
}

// ProductList is the response of every list endpoint.
type ProductList struct {
	Items []ProductView `json:"items"`
	Count int           `json:"count"`
}

func (h *ProductHandler) list(products []models.Product) ProductList {
	now := h.now()
	items := make([]ProductView, 0, len(products))
	for _, p := range products {
		items = append(items, ProductView{
			Product:          p,
			ExpirationStatus: expiry.Classify(p.ExpirationDate, now),
			LowStock:         inventory.IsLowStock(p),
		})
	}
	return ProductList{Items: items, Count: len(items)}
}

func (h *ProductHandler) now() time.Time {
	return h.service.Now().In(h.location)
}

// HandleListProducts returns the filtered and sorted product list.
// Query parameters: search, category, sort and direction.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	key, err := inventory.ParseSortKey(c.Query("sort"))
	if err != nil {
		return respondError(c, err, "Could not list products")
	}
	direction, err := inventory.ParseDirection(c.Query("direction"))
	if err != nil {
		return respondError(c, err, "Could not list products")
	}

	visible := inventory.Derive(h.service.Snapshot(), inventory.ViewOptions{
		SearchText:     c.Query("search"),
		ActiveCategory: c.Query("category"),
		Sort:           inventory.SortConfig{Key: key, Direction: direction},
		Location:       h.location,
	})
	return c.JSON(h.list(visible))
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// productRequest is the body of create and update requests. Identity and
// history belong to the store, so they are only decoded to be rejected.
type productRequest struct {
	models.ProductFields
	ID      *string         `json:"id"`
	History json.RawMessage `json:"history"`
}

// ownedFieldErrors rejects identity and history in a request body. On create
// pathID is empty and any id is rejected; on update the id may only repeat
// the one in the path.
func (r productRequest) ownedFieldErrors(pathID string) map[string]string {
	problems := make(map[string]string)
	if r.ID != nil && (pathID == "" || *r.ID != pathID) {
		problems["id"] = "is assigned by the server"
	}
	if len(r.History) > 0 {
		var entries []json.RawMessage
		if err := json.Unmarshal(r.History, &entries); err != nil || len(entries) > 0 {
			problems["history"] = "cannot be edited"
		}
	}
	return problems
}

// operatorOf names the authenticated operator for the audit log.
func operatorOf(c *fiber.Ctx) string {
	username, _ := c.Locals(middleware.LocalUsername).(string)
	id, _ := c.Locals(middleware.LocalOperatorID).(string)
	if username == "" {
		return "unknown"
	}
	return username + " (" + id + ")"
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing product request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if problems := req.ownedFieldErrors(""); len(problems) > 0 {
		return respondError(c, &services.ValidationError{Fields: problems}, "Invalid product")
	}

	product, err := h.service.Create(c.UserContext(), req.ProductFields)
	if err != nil {
		return respondError(c, err, "Could not save product")
	}
	log.Printf("Operator %s created product %s", operatorOf(c), product.ID)
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the editable fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if problems := req.ownedFieldErrors(id); len(problems) > 0 {
		return respondError(c, &services.ValidationError{Fields: problems}, "Invalid product")
	}

	product, err := h.service.Update(c.UserContext(), id, req.ProductFields)
	if err != nil {
		return respondError(c, err, "Could not save product")
	}
	log.Printf("Operator %s updated product %s", operatorOf(c), id)
	return c.JSON(product)
}

// HandleDeleteProduct removes a product. Deleting an unknown ID succeeds.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "Could not delete product")
	}
	log.Printf("Operator %s deleted product %s", operatorOf(c), id)
	return c.JSON(fiber.Map{
		"message": "Product " + id + " deleted successfully",
	})
}

// HandleCategories returns the category chips.
func (h *ProductHandler) HandleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": inventory.Categories(h.service.Snapshot()),
	})
}

// HandleExpiringSoon returns the products expiring within a month.
func (h *ProductHandler) HandleExpiringSoon(c *fiber.Ctx) error {
	return c.JSON(h.list(inventory.ExpiringSoon(h.service.Snapshot(), h.now())))
}

// HandleExpired returns the products past their expiration date.
func (h *ProductHandler) HandleExpired(c *fiber.Ctx) error {
	return c.JSON(h.list(inventory.Expired(h.service.Snapshot(), h.now())))
}

// HandleShoppingList returns the products at or below their low stock threshold.
func (h *ProductHandler) HandleShoppingList(c *fiber.Ctx) error {
	return c.JSON(h.list(inventory.LowStock(h.service.Snapshot())))
}

// HandleSummary returns the inventory counters and total value.
func (h *ProductHandler) HandleSummary(c *fiber.Ctx) error {
	return c.JSON(inventory.Summarize(h.service.Snapshot(), h.now()))
}
