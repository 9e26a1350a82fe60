package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"eshoplite/internal/domain"
)

var (
	ErrUnavailable = errors.New("catalog unavailable")
	ErrNotFound    = errors.New("catalog item not found")
)

// ProductCatalog es el listado de productos de solo lectura que consume el chatbot.
type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// StoreDirectory lista las tiendas fisicas.
type StoreDirectory interface {
	ListStores(ctx context.Context) ([]domain.StoreInfo, error)
}

// ItemLookup resuelve productos y tiendas por id. Devuelve ErrNotFound si no existen.
type ItemLookup interface {
	GetProduct(ctx context.Context, id int) (domain.Product, error)
	GetStore(ctx context.Context, id int) (domain.StoreInfo, error)
}

// APIClient consume el microservicio de catalogo por HTTP.
type APIClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewAPIClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		logger:  logger,
	}
}

func (c *APIClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.getJSON(ctx, "/api/products", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out, nil
}

func (c *APIClient) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	var out domain.Product
	err := c.getJSON(ctx, fmt.Sprintf("/api/products/%d", id), &out)
	return out, err
}

func (c *APIClient) ListStores(ctx context.Context) ([]domain.StoreInfo, error) {
	var out []domain.StoreInfo
	if err := c.getJSON(ctx, "/api/stores", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.StoreInfo{}
	}
	return out, nil
}

func (c *APIClient) GetStore(ctx context.Context, id int) (domain.StoreInfo, error) {
	var out domain.StoreInfo
	err := c.getJSON(ctx, fmt.Sprintf("/api/stores/%d", id), &out)
	return out, err
}

func (c *APIClient) getJSON(ctx context.Context, endpoint string, dst any) error {
	c.logger.Debug("catalog request", zap.String("endpoint", endpoint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("catalog request failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrUnavailable, err)
	}
	return nil
}
