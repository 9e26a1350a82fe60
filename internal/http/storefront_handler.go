package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eshoplite/internal/catalog"
)

// StorefrontHandler reexpone el microservicio de catalogo.
type StorefrontHandler struct {
	logger   *zap.Logger
	products catalog.ProductCatalog
	stores   catalog.StoreDirectory
	items    catalog.ItemLookup
}

func NewStorefrontHandler(logger *zap.Logger, products catalog.ProductCatalog, stores catalog.StoreDirectory, items catalog.ItemLookup) *StorefrontHandler {
	return &StorefrontHandler{logger: logger, products: products, stores: stores, items: items}
}

// ListProducts maneja GET /api/products.
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct maneja GET /api/products/:id.
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.items.GetProduct(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		h.logger.Error("get product failed", zap.Int("product_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListStores maneja GET /api/stores.
func (h *StorefrontHandler) ListStores(c *gin.Context) {
	stores, err := h.stores.ListStores(c.Request.Context())
	if err != nil {
		h.logger.Error("list stores failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// GetStore maneja GET /api/stores/:id.
func (h *StorefrontHandler) GetStore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	store, err := h.items.GetStore(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		return
	}
	if err != nil {
		h.logger.Error("get store failed", zap.Int("store_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load store"})
		return
	}
	c.JSON(http.StatusOK, store)
}
