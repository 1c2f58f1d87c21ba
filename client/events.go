package client

import (
	"context"
	"fmt"
	"sync"
)

// EventStore caches the organizer's own events and reconciles the cache on
// every successful mutation.
type EventStore struct {
	c *Client

	mu     sync.Mutex
	items  []Event
	loaded bool
}

func NewEventStore(c *Client) *EventStore {
	return &EventStore{c: c}
}

func (s *EventStore) List(ctx context.Context) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		var items []Event
		if err := s.c.get(ctx, "/events", &items); err != nil {
			return nil, err
		}
		s.items = items
		s.loaded = true
	}

	out := make([]Event, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *EventStore) Create(ctx context.Context, input CreateEventInput) (*Event, error) {
	var event Event
	if err := s.c.post(ctx, "/events", input, &event); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.loaded {
		s.items = append(s.items, event)
	}
	s.mu.Unlock()
	return &event, nil
}

func (s *EventStore) Update(ctx context.Context, id uint, input map[string]interface{}) (*Event, error) {
	var event Event
	if err := s.c.put(ctx, fmt.Sprintf("/events/%d", id), input, &event); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == event.ID {
			s.items[i] = event
			break
		}
	}
	s.mu.Unlock()
	return &event, nil
}

func (s *EventStore) Delete(ctx context.Context, id uint) error {
	if err := s.c.delete(ctx, fmt.Sprintf("/events/%d", id)); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Invalidate drops the cache so the next List refetches.
func (s *EventStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.items = nil
	s.mu.Unlock()
}
