package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	mu       sync.Mutex
	Requests []CompletionRequest
}

func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	return m.Response, m.Err
}

// LastRequest devuelve la ultima solicitud recibida.
func (m *MockClient) LastRequest() (CompletionRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return CompletionRequest{}, false
	}
	return m.Requests[len(m.Requests)-1], true
}
