package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"eshoplite/internal/domain"
	"eshoplite/internal/repository"
)

var (
	ErrCatalogServiceNotConfigured = errors.New("catalog service not configured")
	ErrCatalogNotFound             = errors.New("catalog item not found")
)

// CatalogService expone productos y tiendas desde los repositorios.
// Tambien satisface catalog.ProductCatalog para uso en proceso.
type CatalogService struct {
	logger   *zap.Logger
	products repository.ProductRepository
	stores   repository.StoreRepository
}

func NewCatalogService(logger *zap.Logger, products repository.ProductRepository, stores repository.StoreRepository) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{logger: logger, products: products, stores: stores}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s == nil || s.products == nil {
		return nil, ErrCatalogServiceNotConfigured
	}
	s.logger.Debug("retrieving all products")
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error("list products failed", zap.Error(err))
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	if s == nil || s.products == nil {
		return domain.Product{}, ErrCatalogServiceNotConfigured
	}
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Product{}, ErrCatalogNotFound
	}
	if err != nil {
		s.logger.Error("get product failed", zap.Int("product_id", id), zap.Error(err))
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *CatalogService) ListStores(ctx context.Context) ([]domain.StoreInfo, error) {
	if s == nil || s.stores == nil {
		return nil, ErrCatalogServiceNotConfigured
	}
	s.logger.Debug("retrieving all stores")
	stores, err := s.stores.List(ctx)
	if err != nil {
		s.logger.Error("list stores failed", zap.Error(err))
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

func (s *CatalogService) GetStore(ctx context.Context, id int) (domain.StoreInfo, error) {
	if s == nil || s.stores == nil {
		return domain.StoreInfo{}, ErrCatalogServiceNotConfigured
	}
	st, err := s.stores.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.StoreInfo{}, ErrCatalogNotFound
	}
	if err != nil {
		s.logger.Error("get store failed", zap.Int("store_id", id), zap.Error(err))
		return domain.StoreInfo{}, fmt.Errorf("get store: %w", err)
	}
	return st, nil
}
