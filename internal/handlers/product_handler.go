package handlers

import (
	"errors"
	"strconv"
	"strings"

	"productos/internal/models"
	"productos/internal/services"
	"productos/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Messages returned to API clients.
const (
	MsgInvalidID           = "El ID no es válido"
	MsgEmptyName           = "El nombre del producto no puede estar vacío."
	MsgInvalidPrice        = "Valor no válido."
	MsgEmptyPrice          = "El precio del producto no puede estar vacío."
	MsgPriceNotPositive    = "El precio debe ser mayor a 0"
	MsgInvalidAvailability = "Valor para disponibilidad no válido."
	MsgProductNotFound     = "Producto no econtrado."
	MsgProductDeleted      = "Producto Eliminado."
	MsgServerError         = "Hubo un error en el servidor."
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     logrus.FieldLogger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

func idRule() validation.Rule {
	return validation.Param("id").IsInt(MsgInvalidID)
}

func nameRule() validation.Rule {
	return validation.Body("name").NotEmpty(MsgEmptyName)
}

func priceRule() validation.Rule {
	return validation.Body("price").
		IsNumeric(MsgInvalidPrice).
		FitsDecimal(models.PricePrecision, models.PriceScale, MsgInvalidPrice).
		NotEmpty(MsgEmptyPrice).
		GreaterThanZero(MsgPriceNotPositive)
}

func availabilityRule() validation.Rule {
	return validation.Body("availability").IsBoolean(MsgInvalidAvailability)
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id",
		validation.Chain(idRule()),
		h.HandleGetProductByID,
	)
	productRoutes.Post("/",
		validation.Chain(nameRule(), priceRule()),
		h.HandleCreateProduct,
	)
	productRoutes.Put("/:id",
		validation.Chain(idRule(), nameRule(), priceRule(), availabilityRule()),
		h.HandleReplaceProduct,
	)
	productRoutes.Patch("/:id",
		validation.Chain(idRule()),
		h.HandleUpdateAvailability,
	)
	productRoutes.Delete("/:id",
		validation.Chain(idRule()),
		h.HandleDeleteProduct,
	)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.fail(c, err, "Error getting all products")
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "Error getting product by ID")
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in := validation.InputFrom(c)
	price, err := validation.AsFloat(in.Body["price"])
	if err != nil {
		return h.fail(c, err, "Error reading validated price")
	}

	product, err := h.service.CreateProduct(c.UserContext(), validation.AsString(in.Body["name"]), price)
	if err != nil {
		return h.fail(c, err, "Error creating product")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleReplaceProduct overwrites name, price and availability of a product.
func (h *ProductHandler) HandleReplaceProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	in := validation.InputFrom(c)
	price, err := validation.AsFloat(in.Body["price"])
	if err != nil {
		return h.fail(c, err, "Error reading validated price")
	}
	availability, _ := validation.AsBool(in.Body["availability"])

	product, err := h.service.ReplaceProduct(c.UserContext(), id, services.ReplaceProduct{
		Name:         validation.AsString(in.Body["name"]),
		Price:        price,
		Availability: availability,
	})
	if err != nil {
		return h.fail(c, err, "Error replacing product")
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleUpdateAvailability sets the availability from the body, or toggles it
// when the body carries no boolean availability.
func (h *ProductHandler) HandleUpdateAvailability(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}

	var availability *bool
	if v, present := validation.InputFrom(c).Body["availability"]; present {
		if b, ok := validation.AsBool(v); ok {
			availability = &b
		}
	}

	product, err := h.service.UpdateAvailability(c.UserContext(), id, availability)
	if err != nil {
		return h.fail(c, err, "Error updating product availability")
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return notFound(c)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.fail(c, err, "Error deleting product")
	}
	return c.JSON(fiber.Map{"data": MsgProductDeleted})
}

// productID parses an id that already passed IsInt. Negative or oversized
// ids cannot name a stored product.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(c.Params("id"), "+"), 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": MsgProductNotFound})
}

func (h *ProductHandler) fail(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, services.ErrProductNotFound) {
		return notFound(c)
	}
	h.log.WithError(err).WithField("request_id", c.Locals("requestid")).Error(msg)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": MsgServerError})
}
