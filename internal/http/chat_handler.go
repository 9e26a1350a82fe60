package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eshoplite/internal/domain"
	"eshoplite/internal/service"
)

// ChatHandler expone el chatbot por HTTP.
type ChatHandler struct {
	logger  *zap.Logger
	chatbot *service.ChatbotService
	limiter service.ChatRateLimiter
}

func NewChatHandler(logger *zap.Logger, chatbot *service.ChatbotService) *ChatHandler {
	return &ChatHandler{logger: logger, chatbot: chatbot}
}

// WithRateLimiter limita POST /api/chat por IP de cliente. Un limiter nil no limita.
func (h *ChatHandler) WithRateLimiter(limiter service.ChatRateLimiter) *ChatHandler {
	h.limiter = limiter
	return h
}

func (h *ChatHandler) AIEnabled() bool {
	return h.chatbot.AIEnabled()
}

// SendMessage maneja POST /api/chat. El resultado viaja en el sobre, siempre con 200.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	if h.limiter != nil {
		if retryAfter, ok := h.limiter.Allow(c.Request.Context(), c.ClientIP()); !ok {
			h.logger.Warn("chat rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.Duration("retry_after", retryAfter),
			)
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
	}

	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp := h.chatbot.SendMessage(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}

// GetHistory maneja GET /api/chat/:sessionId/history.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")
	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"messages":  h.chatbot.GetHistory(sessionID),
	})
}

// ClearHistory maneja DELETE /api/chat/:sessionId/history.
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	h.chatbot.ClearHistory(c.Param("sessionId"))
	c.Status(http.StatusNoContent)
}

func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
