package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eshoplite/internal/catalog"
	"eshoplite/internal/domain"
	"eshoplite/internal/service"
)

type stubCatalog struct {
	products []domain.Product
	stores   []domain.StoreInfo
	err      error
}

func (s *stubCatalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) ListStores(_ context.Context) ([]domain.StoreInfo, error) {
	return s.stores, s.err
}

func (s *stubCatalog) GetProduct(_ context.Context, id int) (domain.Product, error) {
	if s.err != nil {
		return domain.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, catalog.ErrNotFound
}

func (s *stubCatalog) GetStore(_ context.Context, id int) (domain.StoreInfo, error) {
	if s.err != nil {
		return domain.StoreInfo{}, s.err
	}
	for _, st := range s.stores {
		if st.ID == id {
			return st, nil
		}
	}
	return domain.StoreInfo{}, catalog.ErrNotFound
}

func setupStoreRouter(cat *stubCatalog) (*gin.Engine, *service.ChatbotService) {
	gin.SetMode(gin.TestMode)
	chatbot := service.NewChatbotService(zap.NewNop(), service.UnavailableBackend{Reason: "test"}, cat, service.ChatbotSettings{})
	r := NewRouter(
		zap.NewNop(),
		NewChatHandler(zap.NewNop(), chatbot),
		NewStorefrontHandler(zap.NewNop(), cat, cat, cat),
	)
	return r, chatbot
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestChatHandlerSendMessage(t *testing.T) {
	r, _ := setupStoreRouter(&stubCatalog{})

	rec := performRequest(r, http.MethodPost, "/api/chat", map[string]any{
		"message":   "thanks!",
		"sessionId": "s1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsSuccessful || resp.SessionID == nil || *resp.SessionID != "s1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ErrorMessage != nil {
		t.Fatalf("expected no error message, got %q", *resp.ErrorMessage)
	}
}

func TestChatHandlerSendMessage_EmptyMessage(t *testing.T) {
	r, _ := setupStoreRouter(&stubCatalog{})

	rec := performRequest(r, http.MethodPost, "/api/chat", map[string]any{"message": "  "})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if raw["isSuccessful"] != false || raw["errorMessage"] != "Empty message" {
		t.Fatalf("unexpected envelope: %+v", raw)
	}
	if v, ok := raw["sessionId"]; !ok || v != nil {
		t.Fatalf("expected null sessionId, got %+v", raw["sessionId"])
	}
}

func TestChatHandlerSendMessage_InvalidJSON(t *testing.T) {
	r, _ := setupStoreRouter(&stubCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChatHandlerHistory(t *testing.T) {
	r, chatbot := setupStoreRouter(&stubCatalog{})
	chatbot.SendMessage(context.Background(), domain.ChatRequest{Message: "hello", SessionID: strPtr("s1")})

	rec := performRequest(r, http.MethodGet, "/api/chat/s1/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		SessionID string            `json:"sessionId"`
		Messages  []domain.ChatTurn `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.SessionID != "s1" || len(body.Messages) != 2 || !body.Messages[0].IsUser {
		t.Fatalf("unexpected history: %+v", body)
	}

	rec = performRequest(r, http.MethodDelete, "/api/chat/s1/history", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if n := len(chatbot.GetHistory("s1")); n != 0 {
		t.Fatalf("expected cleared history, got %d turns", n)
	}

	rec = performRequest(r, http.MethodGet, "/api/chat/unknown/history", nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"messages":[]`)) {
		t.Fatalf("expected empty messages for unknown session, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestStoreRouterHealthAndListings(t *testing.T) {
	cat := &stubCatalog{
		products: []domain.Product{{ID: 1, Name: "Tent"}},
		stores:   []domain.StoreInfo{{ID: 1, Name: "Seattle"}},
	}
	r, _ := setupStoreRouter(cat)

	rec := performRequest(r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"ai_enabled":false`)) {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(r, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"Tent"`)) {
		t.Fatalf("unexpected products response: %d %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(r, http.MethodGet, "/api/stores", nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"Seattle"`)) {
		t.Fatalf("unexpected stores response: %d %s", rec.Code, rec.Body.String())
	}

	cat.err = catalog.ErrUnavailable
	rec = performRequest(r, http.MethodGet, "/api/products", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

type denyAfterLimiter struct {
	allowed int
	keys    []string
}

func (l *denyAfterLimiter) Allow(_ context.Context, clientIP string) (time.Duration, bool) {
	l.keys = append(l.keys, clientIP)
	if l.allowed > 0 {
		l.allowed--
		return 0, true
	}
	return 1500 * time.Millisecond, false
}

func TestChatHandlerSendMessage_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cat := &stubCatalog{}
	chatbot := service.NewChatbotService(zap.NewNop(), service.UnavailableBackend{Reason: "test"}, cat, service.ChatbotSettings{})
	limiter := &denyAfterLimiter{allowed: 1}
	r := NewRouter(
		zap.NewNop(),
		NewChatHandler(zap.NewNop(), chatbot).WithRateLimiter(limiter),
		NewStorefrontHandler(zap.NewNop(), cat, cat, cat),
	)

	body := map[string]any{"message": "hi", "sessionId": "s1"}
	if rec := performRequest(r, http.MethodPost, "/api/chat", body); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on first message, got %d", rec.Code)
	}
	rec := performRequest(r, http.MethodPost, "/api/chat", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once limit reached, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("expected Retry-After rounded up to 2s, got %q", got)
	}
	if n := len(chatbot.GetHistory("s1")); n != 2 {
		t.Fatalf("expected rejected message to leave history untouched, got %d turns", n)
	}
	if len(limiter.keys) != 2 || limiter.keys[0] == "" {
		t.Fatalf("expected limiter keyed by client ip, got %+v", limiter.keys)
	}
}

func TestStoreRouterItemLookups(t *testing.T) {
	cat := &stubCatalog{
		products: []domain.Product{{ID: 3, Name: "Trail Tent"}},
		stores:   []domain.StoreInfo{{ID: 2, Name: "Denver"}},
	}
	r, _ := setupStoreRouter(cat)

	cases := []struct {
		name string
		path string
		code int
		body string
	}{
		{"producto existente", "/api/products/3", http.StatusOK, `"Trail Tent"`},
		{"producto inexistente", "/api/products/99", http.StatusNotFound, "product not found"},
		{"producto id invalido", "/api/products/abc", http.StatusBadRequest, "invalid id"},
		{"tienda existente", "/api/stores/2", http.StatusOK, `"Denver"`},
		{"tienda inexistente", "/api/stores/99", http.StatusNotFound, "store not found"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := performRequest(r, http.MethodGet, c.path, nil)
			if rec.Code != c.code || !bytes.Contains(rec.Body.Bytes(), []byte(c.body)) {
				t.Fatalf("expected %d with %s, got %d %s", c.code, c.body, rec.Code, rec.Body.String())
			}
		})
	}

	cat.err = catalog.ErrUnavailable
	if rec := performRequest(r, http.MethodGet, "/api/stores/2", nil); rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on upstream failure, got %d", rec.Code)
	}
}

func strPtr(s string) *string { return &s }
