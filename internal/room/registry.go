package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrGameExists   = errors.New("Game already exists")
	ErrGameNotFound = errors.New("Game not found")
)

// Registry is the process-wide map of room id to session. It is constructed
// once at startup and handed to the transport layer; there is no package
// level instance.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logger.With("component", "registry"),
	}
}

// Create inserts a fresh session for the id, failing when it is taken.
func (r *Registry) Create(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; ok {
		return nil, ErrGameExists
	}

	s := NewSession()
	r.sessions[id] = s
	r.logger.Info("game created", "game_id", id, "total", len(r.sessions))
	return s, nil
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	return s, ok
}

// Remove deletes the session; a missing id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return
	}
	delete(r.sessions, id)
	r.logger.Info("game removed", "game_id", id, "remaining", len(r.sessions))
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StartReaper removes sessions that have had no role assignments for longer
// than ttl. Detaching the last connection never tears a room down directly;
// this janitor is the only cleanup path.
func (r *Registry) StartReaper(ctx context.Context, ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.reap(ttl)
			}
		}
	}()
}

func (r *Registry) reap(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		if empty, since := s.Empty(); empty && since > ttl {
			delete(r.sessions, id)
			r.logger.Info("reaped empty game", "game_id", id, "empty_for", since)
		}
	}
}
