package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	catalog *service.CatalogService
	pricing *service.PricingService
	clock   service.Clock
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog *service.CatalogService, pricing *service.PricingService, clock service.Clock) *ProductHandler {
	return &ProductHandler{catalog: catalog, pricing: pricing, clock: clock}
}

func (h *ProductHandler) describe(products []entity.Product) []response.ProductResponse {
	asOf := h.clock()
	out := make([]response.ProductResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, response.NewProductResponse(p, h.pricing.UnitPriceAt(p, asOf), h.pricing.HasDiscount(p, asOf), asOf))
	}
	return out
}

// List handles listing every product, expired ones included
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", h.describe(products))
}

// ListAvailable handles listing the products that can still be sold
func (h *ProductHandler) ListAvailable(c *gin.Context) {
	products, err := h.catalog.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Available products retrieved successfully", h.describe(products))
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", h.describe([]entity.Product{*product})[0])
}

// Create handles adding a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := enum.ParseProductCategory(req.Category)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	expiresOn, err := time.Parse(time.DateOnly, req.ExpirationDate)
	if err != nil {
		response.BadRequest(c, "expiration_date must use the YYYY-MM-DD format")
		return
	}

	product := &entity.Product{
		ID:              req.ID,
		Name:            req.Name,
		PurchaseCost:    req.PurchaseCost,
		Category:        category,
		ExpirationDate:  expiresOn,
		MarkupPercent:   req.MarkupPercent,
		QuantityInStock: req.QuantityInStock,
	}
	if err := h.catalog.AddProduct(c.Request.Context(), product); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", h.describe([]entity.Product{*product})[0])
}

// Restock handles adding units to an existing product
func (h *ProductHandler) Restock(c *gin.Context) {
	var req request.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.catalog.Restock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product restocked successfully", h.describe([]entity.Product{*product})[0])
}
