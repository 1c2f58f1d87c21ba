package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryStoreFetchesOnce(t *testing.T) {
	var fetches atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/event-categories", func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		writeData(w, []Category{{ID: 1, Name: "Music"}, {ID: 2, Name: "Workshops"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := NewCategoryStore(New(srv.URL))
	ctx := context.Background()

	first, err := store.List(ctx)
	require.NoError(t, err)
	second, err := store.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
	assert.Equal(t, int64(1), fetches.Load())

	_, err = store.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fetches.Load())
}

func TestEventStoreReconcilesOnMutation(t *testing.T) {
	var lists atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/events", func(w http.ResponseWriter, r *http.Request) {
		lists.Add(1)
		writeData(w, []Event{{ID: 1, Title: "Existing", Status: EventStatusDraft}})
	})
	mux.HandleFunc("POST /v1/events", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, Event{ID: 2, Title: "Untitled Event", Status: EventStatusDraft})
	})
	mux.HandleFunc("PUT /v1/events/2", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, Event{ID: 2, Title: "Renamed", Status: EventStatusDraft})
	})
	mux.HandleFunc("DELETE /v1/events/1", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, nil)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := NewEventStore(New(srv.URL))
	ctx := context.Background()

	events, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)

	created, err := store.Create(ctx, CreateEventInput{Title: ""})
	require.NoError(t, err)
	assert.Equal(t, "Untitled Event", created.Title)

	updated, err := store.Update(ctx, 2, map[string]interface{}{"title": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	require.NoError(t, store.Delete(ctx, 1))

	// The cache tracked every mutation without refetching.
	events, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Renamed", events[0].Title)
	assert.Equal(t, int64(1), lists.Load())

	store.Invalidate()
	_, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), lists.Load())
}
