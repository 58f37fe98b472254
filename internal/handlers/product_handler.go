package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"productapi/internal/authz"
	"productapi/internal/dto"
	"productapi/internal/mapper"
	"productapi/internal/middleware"
	"productapi/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	validate       *dto.Validator
	log            *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, validate *dto.Validator, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validate,
		log:            log,
	}
}

// RegisterRoutes registers the product routes. Reads are public; writes go through
// authRequired.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", authRequired, h.HandleCreateProduct)
	productRoutes.Put("/:id", authRequired, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authRequired, h.HandleDeleteProduct)
}

// HandleGetProducts returns every product, or 204 when there are none.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts(c.UserContext())
	if err != nil {
		return productError(c, h.log, err, "Could not retrieve products")
	}
	if len(products) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(mapper.ToProductResponses(products))
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidProductID(c)
	}

	product, err := h.productService.GetProductByID(c.UserContext(), id)
	if err != nil {
		return productError(c, h.log, err, "Could not retrieve product")
	}
	return c.JSON(mapper.ToProductResponse(product))
}

// HandleCreateProduct creates a product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.productService.CreateProduct(c.UserContext(), req, middleware.Email(c))
	if err != nil {
		return productError(c, h.log, err, "Could not create product")
	}

	c.Location(strings.TrimSuffix(c.Path(), "/") + "/" + strconv.Itoa(product.ID))
	return c.Status(fiber.StatusCreated).JSON(mapper.ToProductResponse(product))
}

// HandleUpdateProduct replaces the mutable fields of a product the caller owns. Existence and
// ownership are checked before the body is looked at.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidProductID(c)
	}

	ctx := c.UserContext()
	product, err := h.productService.GetForModification(ctx, id, middleware.Email(c), authz.ActionUpdate)
	if err != nil {
		return productError(c, h.log, err, "Could not update product")
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.productService.UpdateProduct(ctx, product, req); err != nil {
		return productError(c, h.log, err, "Could not update product")
	}
	return c.JSON(mapper.ToProductResponse(product))
}

// HandleDeleteProduct deletes a product the caller owns.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidProductID(c)
	}

	if err := h.productService.DeleteProduct(c.UserContext(), id, middleware.Email(c)); err != nil {
		return productError(c, h.log, err, "Could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func invalidProductID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid product ID",
	})
}
