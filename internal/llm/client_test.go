package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

func TestHTTPClientComplete(t *testing.T) {
	t.Run("envia mensajes y parametros", func(t *testing.T) {
		var got chatRequest
		var auth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			auth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hola"}}]}`))
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL+"/", "secret", "default-model", time.Second, zap.NewNop())
		out, err := c.Complete(context.Background(), CompletionRequest{
			Messages:    []Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "hi"}},
			Temperature: 0.7,
			MaxTokens:   500,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out != "hola" {
			t.Fatalf("expected hola, got %q", out)
		}
		if auth != "Bearer secret" {
			t.Fatalf("expected bearer header, got %q", auth)
		}
		if got.Model != "default-model" || got.Temperature != 0.7 || got.MaxTokens != 500 {
			t.Fatalf("unexpected request body: %+v", got)
		}
		if len(got.Messages) != 2 || got.Messages[0].Role != RoleSystem {
			t.Fatalf("unexpected messages: %+v", got.Messages)
		}
	})

	t.Run("status de error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL, "bad", "m", time.Second, nil)
		_, err := c.Complete(context.Background(), CompletionRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		if !errors.Is(err, ErrHTTPStatus) {
			t.Fatalf("expected ErrHTTPStatus, got %v", err)
		}
	})

	t.Run("respuesta vacia", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":""}}]}`))
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL, "k", "m", time.Second, nil)
		_, err := c.Complete(context.Background(), CompletionRequest{})
		if !errors.Is(err, ErrEmptyResponse) {
			t.Fatalf("expected ErrEmptyResponse, got %v", err)
		}
	})

	t.Run("respuesta malformada", func(t *testing.T) {
		for _, body := range []string{`{"choices":[]}`, `{}`, `not json`} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			c := NewHTTPClient(srv.URL, "k", "m", time.Second, nil)
			_, err := c.Complete(context.Background(), CompletionRequest{})
			srv.Close()
			if !errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrEmptyResponse) {
				t.Fatalf("body %q: expected ErrMalformedResponse, got %v", body, err)
			}
		}
	})
}

type fakeTransport struct {
	status int
	body   string
	req    []byte
}

func (f *fakeTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Body != nil {
		f.req, _ = io.ReadAll(r.Body)
	}
	resp := &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     make(http.Header),
		Request:    r,
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func TestAnthropicClientComplete(t *testing.T) {
	ft := &fakeTransport{
		status: http.StatusOK,
		body:   `{"id":"msg_1","type":"message","role":"assistant","model":"claude-test","content":[{"type":"text","text":"Try our tents!"}],"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":4}}`,
	}
	c := NewAnthropicClient("test-key", "claude-test", time.Second,
		option.WithHTTPClient(&http.Client{Transport: ft}),
		option.WithMaxRetries(0),
	)

	out, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "persona"},
			{Role: RoleUser, Content: "tents?"},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "Try our tents!" {
		t.Fatalf("unexpected output %q", out)
	}

	var sent struct {
		System []struct {
			Text string `json:"text"`
		} `json:"system"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}
	if err := json.Unmarshal(ft.req, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if len(sent.System) != 1 || sent.System[0].Text != "persona" {
		t.Fatalf("expected system prompt split out, got %+v", sent.System)
	}
	if len(sent.Messages) != 1 || sent.Messages[0].Role != "user" {
		t.Fatalf("expected a single user message, got %+v", sent.Messages)
	}
	if sent.MaxTokens != 500 {
		t.Fatalf("expected max_tokens 500, got %d", sent.MaxTokens)
	}
}

func TestNewChatClient(t *testing.T) {
	t.Run("sin api key", func(t *testing.T) {
		_, err := NewChatClient(ProviderConfig{Provider: ProviderOpenAI}, zap.NewNop())
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Fatalf("expected ErrMissingAPIKey, got %v", err)
		}
	})

	t.Run("proveedor desconocido", func(t *testing.T) {
		_, err := NewChatClient(ProviderConfig{Provider: "bogus", APIKey: "k"}, zap.NewNop())
		if !errors.Is(err, ErrUnknownProvider) {
			t.Fatalf("expected ErrUnknownProvider, got %v", err)
		}
	})

	t.Run("openai por defecto", func(t *testing.T) {
		c, err := NewChatClient(ProviderConfig{APIKey: "k", Model: "gpt-4o-mini"}, zap.NewNop())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := c.(*HTTPClient); !ok {
			t.Fatalf("expected *HTTPClient, got %T", c)
		}
	})

	t.Run("anthropic sin modelo usa su default", func(t *testing.T) {
		c, err := NewChatClient(ProviderConfig{Provider: ProviderAnthropic, APIKey: "k"}, zap.NewNop())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		ac, ok := c.(*AnthropicClient)
		if !ok || ac.model != DefaultAnthropicModel {
			t.Fatalf("expected anthropic default model, got %T %+v", c, c)
		}
	})

	t.Run("anthropic", func(t *testing.T) {
		c, err := NewChatClient(ProviderConfig{Provider: "Anthropic", APIKey: "k"}, zap.NewNop())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := c.(*AnthropicClient); !ok {
			t.Fatalf("expected *AnthropicClient, got %T", c)
		}
	})
}

func TestResolveModel(t *testing.T) {
	cases := []struct {
		provider, model, want string
	}{
		{"", "", DefaultOpenAIModel},
		{ProviderOpenAI, "", DefaultOpenAIModel},
		{ProviderLangChain, "", DefaultOpenAIModel},
		{"Anthropic", "", DefaultAnthropicModel},
		{ProviderAnthropic, " claude-custom ", "claude-custom"},
		{ProviderOpenAI, "gpt-4o", "gpt-4o"},
	}
	for _, c := range cases {
		if got := ResolveModel(c.provider, c.model); got != c.want {
			t.Fatalf("ResolveModel(%q, %q) = %q, want %q", c.provider, c.model, got, c.want)
		}
	}
}
