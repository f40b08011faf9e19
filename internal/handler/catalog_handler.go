package handler

import (
	"log/slog"
	"net/http"

	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public product list consumed by the web client
type CatalogHandler struct {
	service service.CatalogService
	log     *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(s service.CatalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{service: s, log: log}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// RegisterCatalogRoutes registers product routes
func (h *CatalogHandler) RegisterCatalogRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}
}
