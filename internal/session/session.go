// Package session tracks the terminals selling at the booth. Each session
// owns one cart and a commit guard.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/cart"
)

type Session struct {
	ID        string
	Cart      *cart.Cart
	CreatedAt time.Time

	committing atomic.Bool
}

// TryBeginCommit claims the session's commit slot. It returns false while
// another commit from the same session is still running.
func (s *Session) TryBeginCommit() bool {
	return s.committing.CompareAndSwap(false, true)
}

func (s *Session) EndCommit() {
	s.committing.Store(false)
}

func (s *Session) Committing() bool {
	return s.committing.Load()
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &Session{ID: id, Cart: cart.New(), CreatedAt: r.now()}
		r.sessions[id] = s
	}
	return s
}
