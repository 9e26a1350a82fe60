package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eshoplite/internal/service"
)

// CatalogHandler sirve productos y tiendas desde la base del catalogo.
type CatalogHandler struct {
	logger  *zap.Logger
	catalog *service.CatalogService
}

func NewCatalogHandler(logger *zap.Logger, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{logger: logger, catalog: catalog}
}

// ListProducts maneja GET /api/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while retrieving products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct maneja GET /api/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if errors.Is(err, service.ErrCatalogNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while retrieving the product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListStores maneja GET /api/stores.
func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.catalog.ListStores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while retrieving stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// GetStore maneja GET /api/stores/:id.
func (h *CatalogHandler) GetStore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	store, err := h.catalog.GetStore(c.Request.Context(), id)
	if errors.Is(err, service.ErrCatalogNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while retrieving the store"})
		return
	}
	c.JSON(http.StatusOK, store)
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
