package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de la tienda: chat, listados y health.
func NewRouter(
	logger *zap.Logger,
	chatH *ChatHandler,
	storefrontH *StorefrontHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ai_enabled": chatH.AIEnabled()})
	})

	api := r.Group("/api")
	chat := api.Group("/chat")
	chat.POST("", chatH.SendMessage)
	chat.GET("/:sessionId/history", chatH.GetHistory)
	chat.DELETE("/:sessionId/history", chatH.ClearHistory)

	api.GET("/products", storefrontH.ListProducts)
	api.GET("/products/:id", storefrontH.GetProduct)
	api.GET("/stores", storefrontH.ListStores)
	api.GET("/stores/:id", storefrontH.GetStore)

	return r
}

// NewCatalogRouter configura el router del microservicio de catalogo.
func NewCatalogRouter(logger *zap.Logger, catalogH *CatalogHandler) *gin.Engine {
	r := gin.New()
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	products := r.Group("/api/products")
	products.GET("", catalogH.ListProducts)
	products.GET("/:id", catalogH.GetProduct)

	stores := r.Group("/api/stores")
	stores.GET("", catalogH.ListStores)
	stores.GET("/:id", catalogH.GetStore)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
