package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bytesOfSize(n int) []byte {
	return make([]byte, n)
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

func findQueued(items []UploadItem, id string) (UploadItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return UploadItem{}, false
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{})
	require.NoError(t, w.Init(context.Background()))

	id := w.UploadImage(context.Background(), "clip.gif", "image/gif", 1024, bytesReader(bytesOfSize(1024)), nil)

	item, ok := findQueued(w.Queue(), id)
	require.True(t, ok)
	assert.Equal(t, UploadStatusError, item.Status)
	assert.Contains(t, item.Error, "jpeg, png and webp")
	assert.Equal(t, int64(0), b.uploads.Load(), "invalid file must not be sent")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{})
	require.NoError(t, w.Init(context.Background()))

	// 15MB PNG, declared size is enough to reject without reading.
	id := w.UploadImage(context.Background(), "huge.png", "image/png", 15*1024*1024, bytesReader(nil), nil)

	item, ok := findQueued(w.Queue(), id)
	require.True(t, ok)
	assert.Equal(t, UploadStatusError, item.Status)
	assert.Contains(t, item.Error, "10MB")
	assert.Equal(t, int64(0), b.uploads.Load())
}

func TestUploadEnforcesImageCap(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{MaxImages: 3})

	existing := make([]EventMedia, 3)
	for i := range existing {
		existing[i] = EventMedia{ID: uint(i + 1), EventID: 1, IsPrimary: i == 0}
	}
	w.Adopt(Event{ID: 1, Media: existing})

	id := w.UploadImage(context.Background(), "fourth.jpg", "image/jpeg", 1024, bytesReader(bytesOfSize(1024)), nil)

	item, ok := findQueued(w.Queue(), id)
	require.True(t, ok)
	assert.Equal(t, UploadStatusError, item.Status)
	assert.Contains(t, item.Error, "at most 3 images")
	assert.Equal(t, int64(0), b.uploads.Load())
	assert.Len(t, w.Media(), 3)
}

func TestUploadCapCountsInFlight(t *testing.T) {
	release := make(chan struct{})

	mux := http.NewServeMux()
	var uploads atomic.Int64
	mux.HandleFunc("POST /v1/events/1/media", func(w http.ResponseWriter, r *http.Request) {
		<-release
		r.ParseMultipartForm(32 << 20)
		n := uploads.Add(1)
		writeData(w, EventMedia{ID: uint(n), EventID: 1, IsPrimary: n == 1})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	w := NewDraftWorkflow(New(srv.URL), DraftConfig{MaxImages: 2})
	w.Adopt(Event{ID: 1})

	ctx := context.Background()
	w.UploadImage(ctx, "a.jpg", "image/jpeg", 512, bytesReader(bytesOfSize(512)), nil)
	w.UploadImage(ctx, "b.jpg", "image/jpeg", 512, bytesReader(bytesOfSize(512)), nil)

	// Both slots are taken by in-flight uploads, the third is refused
	// before either finishes.
	id := w.UploadImage(ctx, "c.jpg", "image/jpeg", 512, bytesReader(bytesOfSize(512)), nil)
	item, ok := findQueued(w.Queue(), id)
	require.True(t, ok)
	assert.Equal(t, UploadStatusError, item.Status)
	assert.Contains(t, item.Error, "at most 2 images")
}

func TestUploadSuccessEvictsAfterDisplayTime(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{DoneDisplayTime: 20 * time.Millisecond})
	require.NoError(t, w.Init(context.Background()))

	var lastPercent atomic.Int64
	id := w.UploadImage(context.Background(), "cover.jpg", "image/jpeg", 2048, bytesReader(bytesOfSize(2048)), func(percent int) {
		lastPercent.Store(int64(percent))
	})

	require.Eventually(t, func() bool {
		item, ok := findQueued(w.Queue(), id)
		return ok && item.Status == UploadStatusDone
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, int64(100), lastPercent.Load())
	require.Len(t, w.Media(), 1)
	assert.True(t, w.Media()[0].IsPrimary)

	// The finished entry leaves the queue on its own, the image stays.
	require.Eventually(t, func() bool {
		_, ok := findQueued(w.Queue(), id)
		return !ok
	}, 2*time.Second, 5*time.Millisecond)
	assert.Len(t, w.Media(), 1)
}

func TestUploadErrorStaysUntilDismissed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/events/1/media", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "storage unavailable")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	w := NewDraftWorkflow(New(srv.URL), DraftConfig{DoneDisplayTime: 10 * time.Millisecond})
	w.Adopt(Event{ID: 1})

	id := w.UploadImage(context.Background(), "cover.jpg", "image/jpeg", 1024, bytesReader(bytesOfSize(1024)), nil)

	require.Eventually(t, func() bool {
		item, ok := findQueued(w.Queue(), id)
		return ok && item.Status == UploadStatusError
	}, 2*time.Second, 5*time.Millisecond)

	item, _ := findQueued(w.Queue(), id)
	assert.Equal(t, "storage unavailable", item.Error)
	assert.Empty(t, w.Media())

	// Well past the done-display window the error is still visible.
	time.Sleep(50 * time.Millisecond)
	_, ok := findQueued(w.Queue(), id)
	require.True(t, ok)

	w.Dismiss(id)
	_, ok = findQueued(w.Queue(), id)
	assert.False(t, ok)
}

func TestSetPrimaryLeavesExactlyOneCover(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /v1/events/1/media/2/primary", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []EventMedia{
			{ID: 1, EventID: 1, IsPrimary: false},
			{ID: 2, EventID: 1, IsPrimary: true},
			{ID: 3, EventID: 1, IsPrimary: false},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	w := NewDraftWorkflow(New(srv.URL), DraftConfig{})
	w.Adopt(Event{ID: 1, Media: []EventMedia{
		{ID: 1, EventID: 1, IsPrimary: true},
		{ID: 2, EventID: 1},
		{ID: 3, EventID: 1},
	}})

	require.NoError(t, w.SetPrimary(context.Background(), 2))

	primaries := 0
	for _, m := range w.Media() {
		if m.IsPrimary {
			primaries++
			assert.Equal(t, uint(2), m.ID)
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestDeleteMedia(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v1/events/1/media/2", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, nil)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	w := NewDraftWorkflow(New(srv.URL), DraftConfig{})
	w.Adopt(Event{ID: 1, Media: []EventMedia{
		{ID: 1, EventID: 1, IsPrimary: true},
		{ID: 2, EventID: 1},
	}})

	require.NoError(t, w.DeleteMedia(context.Background(), 2))

	media := w.Media()
	require.Len(t, media, 1)
	assert.Equal(t, uint(1), media[0].ID)
}
