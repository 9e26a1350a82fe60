package domain

import "time"

// ChatTurn es un mensaje de una conversacion, del usuario o del asistente.
type ChatTurn struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest es el sobre de entrada del chatbot.
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"sessionId"`
}

// ChatResponse es el sobre de salida del chatbot.
type ChatResponse struct {
	Message      string  `json:"message"`
	SessionID    *string `json:"sessionId"`
	IsSuccessful bool    `json:"isSuccessful"`
	ErrorMessage *string `json:"errorMessage"`
}

// ChatSession es el estado mutable de una conversacion.
type ChatSession struct {
	ID           string     `json:"id"`
	Turns        []ChatTurn `json:"messages"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastActivity time.Time  `json:"lastActivity"`
}
