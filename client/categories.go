package client

import (
	"context"
	"sync"
)

// CategoryStore caches the read-only category list for the organizer form.
type CategoryStore struct {
	c *Client

	mu     sync.Mutex
	items  []Category
	loaded bool
}

func NewCategoryStore(c *Client) *CategoryStore {
	return &CategoryStore{c: c}
}

// List fetches the categories on first use and serves the cache afterwards.
func (s *CategoryStore) List(ctx context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		var items []Category
		if err := s.c.get(ctx, "/event-categories", &items); err != nil {
			return nil, err
		}
		s.items = items
		s.loaded = true
	}

	out := make([]Category, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Refresh drops the cache and refetches.
func (s *CategoryStore) Refresh(ctx context.Context) ([]Category, error) {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	return s.List(ctx)
}
