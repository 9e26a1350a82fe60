package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"eshoplite/internal/config"
	"eshoplite/internal/db"
	apihttp "eshoplite/internal/http"
	"eshoplite/internal/repository"
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

	var (
		productRepo repository.ProductRepository
		storeRepo   repository.StoreRepository
	)
	switch strings.ToLower(cfg.CatalogDriver) {
	case "postgres":
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		if err := db.EnsurePostgresSchema(ctx, pool); err != nil {
			logger.Fatal("db init", zap.Error(err))
		}
		productRepo = repository.NewPgProductRepository(pool)
		storeRepo = repository.NewPgStoreRepository(pool)
	case "sqlite":
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Fatal("sqlite open", zap.Error(err))
		}
		defer conn.Close()
		productRepo = repository.NewSQLiteProductRepository(conn)
		storeRepo = repository.NewSQLiteStoreRepository(conn)
	default:
		logger.Fatal("unsupported catalog driver", zap.String("driver", cfg.CatalogDriver))
	}

	catalogSvc := service.NewCatalogService(logger, productRepo, storeRepo)
	router := apihttp.NewCatalogRouter(logger, apihttp.NewCatalogHandler(logger, catalogSvc))

	server := &http.Server{
		Addr:              ":" + cfg.CatalogPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("starting catalog server",
		zap.String("port", cfg.CatalogPort),
		zap.String("driver", cfg.CatalogDriver),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
