// internal/controller/store.go
package controller

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Store holds the live matches of this process.
type Store struct {
	mu    sync.Mutex
	games map[uuid.UUID]*Controller
}

func NewStore() *Store {
	return &Store{
		games: make(map[uuid.UUID]*Controller),
	}
}

func (s *Store) Add(c *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[c.ID()] = c
}

func (s *Store) Get(id uuid.UUID) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, exists := s.games[id]
	return c, exists
}

// Delete removes the match and closes it.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	c, exists := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if exists {
		c.Close()
	}
}

// List returns the live matches, oldest first.
func (s *Store) List() []*Controller {
	s.mu.Lock()
	out := make([]*Controller, 0, len(s.games))
	for _, c := range s.games {
		out = append(out, c)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
