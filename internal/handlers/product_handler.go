package handlers

import (
	"encoding/json"
	"time"

	"inventory/internal/apperrors"
	"inventory/internal/models"
	"inventory/internal/response"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Success messages of the product operations.
const (
	MsgCreated   = "Product was created successfully."
	MsgRetrieved = "Products retrieved successfully."
	MsgNoneFound = "No products found."
	MsgFound     = "Product found."
	MsgUpdated   = "Product was updated successfully."
	MsgDeleted   = "Product was deleted successfully."
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *logrus.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logrus.Logger) *ProductHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/create", h.HandleCreateProduct)
	productRoutes.Get("/read", h.HandleGetProducts)
	productRoutes.Get("/read_one", h.HandleGetProductByID)
	productRoutes.Post("/update", h.HandleUpdateProduct)
	productRoutes.Put("/update", h.HandleUpdateProduct)
	productRoutes.Post("/delete", h.HandleDeleteProduct)
	productRoutes.Delete("/delete", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product and returns its id.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req := decodeBody[models.CreateProductRequest](c, h.log)

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "create", err)
	}
	return response.Success(c, MsgCreated, fiber.Map{"id": product.ID})
}

// HandleGetProducts lists every product, newest id first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.fail(c, "read", err)
	}
	if len(products) == 0 {
		return response.Success(c, MsgNoneFound, []models.ProductView{})
	}
	return response.Success(c, MsgRetrieved, models.Views(products))
}

// HandleGetProductByID looks a product up by the id query parameter.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	var id models.Field
	if c.Context().QueryArgs().Has("id") {
		id = models.Text(c.Query("id"))
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "read_one", err)
	}
	return response.Success(c, MsgFound, product.View())
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	req := decodeBody[models.UpdateProductRequest](c, h.log)

	if err := h.service.UpdateProduct(c.UserContext(), req); err != nil {
		return h.fail(c, "update", err)
	}
	return response.Success(c, MsgUpdated, nil)
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	req := decodeBody[models.DeleteProductRequest](c, h.log)

	if err := h.service.DeleteProduct(c.UserContext(), req); err != nil {
		return h.fail(c, "delete", err)
	}
	return response.Success(c, MsgDeleted, nil)
}

// HandleHealth reports whether the store is reachable.
func (h *ProductHandler) HandleHealth(c *fiber.Ctx) error {
	if err := h.service.CheckHealth(c.UserContext()); err != nil {
		h.log.WithError(err).Error("health check failed")
		return response.Error(c, fiber.StatusServiceUnavailable, "Database is unavailable.")
	}

	events := "disabled"
	if h.service.EventsEnabled() {
		events = "enabled"
	}
	return response.Success(c, "Service is healthy.", fiber.Map{
		"database": "connected",
		"events":   events,
		"time":     time.Now().Format(time.RFC3339),
	})
}

// decodeBody reads the raw JSON body whatever the Content-Type. A body that
// does not decode yields the zero request, so the operation reports its own
// validation message.
func decodeBody[T any](c *fiber.Ctx, log *logrus.Logger) T {
	var req T
	body := c.Body()
	if len(body) == 0 {
		return req
	}
	if err := json.Unmarshal(body, &req); err != nil {
		log.WithError(err).WithField("path", c.Path()).Debug("ignoring undecodable request body")
		var zero T
		return zero
	}
	return req
}

func (h *ProductHandler) fail(c *fiber.Ctx, op string, err error) error {
	status := apperrors.StatusCode(err)
	if status >= fiber.StatusInternalServerError {
		h.log.WithError(err).WithField("operation", op).Error("product operation failed")
	}
	return response.Error(c, status, err.Error())
}
