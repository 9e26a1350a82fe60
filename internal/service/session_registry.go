package service

import (
	"sync"
	"time"

	"eshoplite/internal/domain"
)

type sessionEntry struct {
	mu      sync.Mutex
	session domain.ChatSession
	evicted bool
}

// SessionRegistry mapea session id -> sesion. Cada sesion tiene su propio lock:
// las mutaciones de una misma sesion se serializan y sesiones distintas no compiten.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func NewSessionRegistry(now func() time.Time) *SessionRegistry {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &SessionRegistry{
		sessions: make(map[string]*sessionEntry),
		now:      now,
	}
}

func (r *SessionRegistry) get(id string) (*sessionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	return e, ok
}

func (r *SessionRegistry) getOrCreate(id string) *sessionEntry {
	if e, ok := r.get(id); ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok {
		return e
	}
	now := r.now()
	e := &sessionEntry{session: domain.ChatSession{
		ID:           id,
		Turns:        []domain.ChatTurn{},
		CreatedAt:    now,
		LastActivity: now,
	}}
	r.sessions[id] = e
	return e
}

// Update ejecuta fn con el lock de la sesion, creandola si no existe.
func (r *SessionRegistry) Update(id string, fn func(*domain.ChatSession) error) error {
	for {
		e := r.getOrCreate(id)
		e.mu.Lock()
		if e.evicted {
			// Sweep la quito entre el lookup y el lock; reintentar con una nueva.
			e.mu.Unlock()
			continue
		}
		err := func() error {
			defer e.mu.Unlock()
			return fn(&e.session)
		}()
		return err
	}
}

// View ejecuta fn con el lock de la sesion si existe. No crea sesiones.
func (r *SessionRegistry) View(id string, fn func(*domain.ChatSession)) bool {
	e, ok := r.get(id)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return false
	}
	fn(&e.session)
	return true
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep elimina sesiones sin actividad desde hace mas de idle.
// Las sesiones con un intercambio en curso se saltean.
func (r *SessionRegistry) Sweep(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.session.LastActivity.Before(cutoff) {
			e.evicted = true
			delete(r.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}
