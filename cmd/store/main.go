package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"eshoplite/internal/catalog"
	"eshoplite/internal/config"
	apihttp "eshoplite/internal/http"
	"eshoplite/internal/llm"
	"eshoplite/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	catalogClient := catalog.NewAPIClient(cfg.CatalogBaseURL, nil, logger)
	var productCatalog catalog.ProductCatalog = catalogClient
	var chatLimiter service.ChatRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, product cache disabled", zap.Error(err))
		} else {
			productCatalog = catalog.NewCachedCatalog(catalogClient, redisClient, cfg.CatalogCacheTTL, logger)
			chatLimiter = service.NewRedisChatRateLimiter(redisClient, cfg.ChatRateWindow, cfg.ChatRateLimit)
		}
		cancel()
	}

	chatbot := service.NewChatbotService(logger, newCompletionBackend(cfg, logger), productCatalog, service.ChatbotSettings{
		Model:           llm.ResolveModel(cfg.LLMProvider, cfg.LLMModel),
		MaxHistoryTurns: cfg.MaxHistoryTurns,
		CallTimeout:     cfg.LLMTimeout,
		SessionIdleTTL:  cfg.SessionIdleTTL,
	})
	go chatbot.RunJanitor(ctx, time.Minute)

	chatHandler := apihttp.NewChatHandler(logger, chatbot).WithRateLimiter(chatLimiter)
	storefrontHandler := apihttp.NewStorefrontHandler(logger, productCatalog, catalogClient, catalogClient)
	router := apihttp.NewRouter(logger, chatHandler, storefrontHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting store server",
		zap.String("port", cfg.HTTPPort),
		zap.Bool("ai_enabled", chatbot.AIEnabled()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newCompletionBackend(cfg *config.Config, logger *zap.Logger) service.CompletionBackend {
	client, err := llm.NewChatClient(llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.CompletionAPIKey(),
		Model:    llm.ResolveModel(cfg.LLMProvider, cfg.LLMModel),
		Timeout:  cfg.LLMTimeout,
	}, logger)
	if err != nil {
		if !errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Error("configure completion client failed", zap.Error(err))
		}
		return service.NewCompletionBackend(nil, err.Error())
	}
	logger.Info("completion client configured", zap.String("provider", cfg.LLMProvider))
	return service.NewCompletionBackend(client, "")
}
