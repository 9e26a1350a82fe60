package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eshoplite/internal/catalog"
	"eshoplite/internal/domain"
	"eshoplite/internal/llm"
)

const (
	DefaultChatModel       = "gpt-4o-mini"
	DefaultMaxHistoryTurns = 10

	chatTemperature      = 0.7
	chatMaxTokens        = 500
	promptHistoryTurns   = 8
	productContextLimit  = 20
	emptyMessageError    = "Empty message"
	emptyMessageReply    = "Please provide a message."
	chatFailureReply     = "I'm sorry, I'm having trouble processing your request right now. Please try again later."
	noResponseReply      = "I'm sorry, I couldn't generate a response."
	defaultProductPrompt = "Various outdoor gear and sporting goods available"
)

var ErrChatInternal = errors.New("chat internal failure")

// CompletionBackend es Configured o Unavailable; se elige una vez al construir el servicio.
type CompletionBackend interface {
	completionBackend()
}

// ConfiguredBackend delega las respuestas en un ChatClient.
type ConfiguredBackend struct {
	Client llm.ChatClient
}

// UnavailableBackend responde solo con reglas.
type UnavailableBackend struct {
	Reason string
}

func (ConfiguredBackend) completionBackend()  {}
func (UnavailableBackend) completionBackend() {}

// NewCompletionBackend elige la variante segun haya cliente o no.
func NewCompletionBackend(client llm.ChatClient, reason string) CompletionBackend {
	if client == nil {
		return UnavailableBackend{Reason: reason}
	}
	return ConfiguredBackend{Client: client}
}

// ChatbotSettings agrupa parametros opcionales; los ceros toman valores por defecto.
type ChatbotSettings struct {
	Model           string
	MaxHistoryTurns int
	CallTimeout     time.Duration
	SessionIdleTTL  time.Duration
	Now             func() time.Time
}

// ChatbotService mantiene las sesiones de chat y genera respuestas con IA o reglas.
type ChatbotService struct {
	logger     *zap.Logger
	backend    CompletionBackend
	catalog    catalog.ProductCatalog
	sessions   *SessionRegistry
	model      string
	maxHistory int
	timeout    time.Duration
	idleTTL    time.Duration
	now        func() time.Time
}

func NewChatbotService(logger *zap.Logger, backend CompletionBackend, productCatalog catalog.ProductCatalog, settings ChatbotSettings) *ChatbotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if backend == nil {
		backend = UnavailableBackend{Reason: "no completion backend"}
	}
	if settings.Model == "" {
		settings.Model = DefaultChatModel
	}
	if settings.MaxHistoryTurns <= 0 {
		settings.MaxHistoryTurns = DefaultMaxHistoryTurns
	}
	if settings.Now == nil {
		settings.Now = func() time.Time { return time.Now().UTC() }
	}

	switch b := backend.(type) {
	case ConfiguredBackend:
		if b.Client == nil {
			backend = UnavailableBackend{Reason: "completion client is nil"}
			logger.Warn("chat completion client is not available, running in fallback mode")
		} else {
			logger.Info("chatbot configured with completion backend", zap.String("model", settings.Model))
		}
	case UnavailableBackend:
		logger.Warn("chat completion client is not available, running in fallback mode", zap.String("reason", b.Reason))
	}

	return &ChatbotService{
		logger:     logger,
		backend:    backend,
		catalog:    productCatalog,
		sessions:   NewSessionRegistry(settings.Now),
		model:      settings.Model,
		maxHistory: settings.MaxHistoryTurns,
		timeout:    settings.CallTimeout,
		idleTTL:    settings.SessionIdleTTL,
		now:        settings.Now,
	}
}

// AIEnabled indica si el servicio tiene un backend de completions.
func (s *ChatbotService) AIEnabled() bool {
	if s == nil {
		return false
	}
	_, ok := s.backend.(ConfiguredBackend)
	return ok
}

// SendMessage procesa un mensaje del usuario y devuelve la respuesta del asistente.
// Nunca devuelve error: los fallos se reflejan en ChatResponse.
func (s *ChatbotService) SendMessage(ctx context.Context, req domain.ChatRequest) domain.ChatResponse {
	if strings.TrimSpace(req.Message) == "" {
		return domain.ChatResponse{
			Message:      emptyMessageReply,
			SessionID:    req.SessionID,
			IsSuccessful: false,
			ErrorMessage: stringPtr(emptyMessageError),
		}
	}

	sessionID := uuid.NewString()
	if req.SessionID != nil && strings.TrimSpace(*req.SessionID) != "" {
		sessionID = *req.SessionID
	}

	reply, err := s.exchange(ctx, sessionID, req.Message)
	if err != nil {
		s.logger.Error("chat message failed",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("message", req.Message),
		)
		return domain.ChatResponse{
			Message:      chatFailureReply,
			SessionID:    req.SessionID,
			IsSuccessful: false,
			ErrorMessage: stringPtr(err.Error()),
		}
	}

	return domain.ChatResponse{
		Message:      reply,
		SessionID:    stringPtr(sessionID),
		IsSuccessful: true,
	}
}

func (s *ChatbotService) exchange(ctx context.Context, sessionID, message string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrChatInternal, r)
		}
	}()
	if s == nil || s.sessions == nil {
		return "", fmt.Errorf("%w: chatbot not configured", ErrChatInternal)
	}

	err = s.sessions.Update(sessionID, func(session *domain.ChatSession) error {
		prior := recentTurns(session.Turns, promptHistoryTurns)

		appendTurn(session, message, true, s.now())
		session.LastActivity = s.now()

		reply = s.reply(ctx, message, prior)

		appendTurn(session, reply, false, s.now())
		session.LastActivity = s.now()
		trimTurns(session, s.maxHistory)
		return nil
	})
	return reply, err
}

func (s *ChatbotService) reply(ctx context.Context, message string, prior []domain.ChatTurn) string {
	switch b := s.backend.(type) {
	case ConfiguredBackend:
		text, err := s.aiReply(ctx, b.Client, message, prior)
		switch {
		case err == nil && strings.TrimSpace(text) != "":
			return text
		case err == nil, errors.Is(err, llm.ErrEmptyResponse):
			return noResponseReply
		default:
			s.logger.Error("ai response failed, using fallback", zap.Error(err))
			return FallbackReply(message)
		}
	default:
		return FallbackReply(message)
	}
}

func (s *ChatbotService) aiReply(ctx context.Context, client llm.ChatClient, message string, prior []domain.ChatTurn) (string, error) {
	productContext := s.productContext(ctx)

	messages := make([]llm.Message, 0, len(prior)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: buildSystemPrompt(productContext)})
	for _, t := range prior {
		role := llm.RoleAssistant
		if t.IsUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: t.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	return client.Complete(callCtx, llm.CompletionRequest{
		Messages:    messages,
		Model:       s.model,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
}

func (s *ChatbotService) productContext(ctx context.Context) string {
	if s.catalog == nil {
		return defaultProductPrompt
	}
	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	products, err := s.catalog.ListProducts(callCtx)
	if err != nil {
		s.logger.Warn("product context unavailable", zap.Error(err))
		return defaultProductPrompt
	}
	if len(products) == 0 {
		return defaultProductPrompt
	}
	return formatProductContext(products, productContextLimit)
}

func (s *ChatbotService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// GetHistory devuelve una copia de los turnos de la sesion, o vacio si no existe.
func (s *ChatbotService) GetHistory(sessionID string) []domain.ChatTurn {
	out := []domain.ChatTurn{}
	if s == nil || s.sessions == nil {
		return out
	}
	s.sessions.View(sessionID, func(session *domain.ChatSession) {
		out = append(out, session.Turns...)
	})
	return out
}

// ClearHistory vacia la sesion si existe; si no, no hace nada.
func (s *ChatbotService) ClearHistory(sessionID string) {
	if s == nil || s.sessions == nil {
		return
	}
	s.sessions.View(sessionID, func(session *domain.ChatSession) {
		session.Turns = []domain.ChatTurn{}
		session.LastActivity = s.now()
	})
}

// RunJanitor elimina periodicamente sesiones inactivas hasta que ctx termine.
func (s *ChatbotService) RunJanitor(ctx context.Context, interval time.Duration) {
	if s == nil || s.idleTTL <= 0 {
		return
	}
	if interval <= 0 {
		interval = s.idleTTL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(s.idleTTL); n > 0 {
				s.logger.Info("idle chat sessions evicted", zap.Int("count", n))
			}
		}
	}
}

func appendTurn(session *domain.ChatSession, content string, isUser bool, at time.Time) {
	if n := len(session.Turns); n > 0 && at.Before(session.Turns[n-1].Timestamp) {
		at = session.Turns[n-1].Timestamp
	}
	session.Turns = append(session.Turns, domain.ChatTurn{
		ID:        uuid.NewString(),
		Content:   content,
		IsUser:    isUser,
		Timestamp: at,
	})
}

func trimTurns(session *domain.ChatSession, max int) {
	if max <= 0 || len(session.Turns) <= max {
		return
	}
	kept := make([]domain.ChatTurn, max)
	copy(kept, session.Turns[len(session.Turns)-max:])
	session.Turns = kept
}

func recentTurns(turns []domain.ChatTurn, n int) []domain.ChatTurn {
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]domain.ChatTurn, len(turns))
	copy(out, turns)
	return out
}

func stringPtr(s string) *string {
	return &s
}
