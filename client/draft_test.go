package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// draftBackend fakes the organizer endpoints the workflow talks to and
// counts the calls each test cares about.
type draftBackend struct {
	creates   atomic.Int64
	puts      atomic.Int64
	uploads   atomic.Int64
	validates atomic.Int64
	readies   atomic.Int64

	validateResult ValidationResult
}

func newDraftBackend() *draftBackend {
	return &draftBackend{
		validateResult: ValidationResult{Valid: true},
	}
}

func (b *draftBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/events", func(w http.ResponseWriter, r *http.Request) {
		b.creates.Add(1)
		writeData(w, Event{ID: 1, Title: "Untitled Event", Slug: "untitled-event", Status: EventStatusDraft})
	})
	mux.HandleFunc("PUT /v1/events/1", func(w http.ResponseWriter, r *http.Request) {
		b.puts.Add(1)
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		title, _ := payload["title"].(string)
		writeData(w, Event{ID: 1, Title: title, Status: EventStatusDraft})
	})
	mux.HandleFunc("POST /v1/events/1/media", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		n := b.uploads.Add(1)
		writeData(w, EventMedia{
			ID:           uint(n),
			EventID:      1,
			IsPrimary:    n == 1,
			DisplayOrder: int(n - 1),
		})
	})
	mux.HandleFunc("GET /v1/events/1/validate", func(w http.ResponseWriter, r *http.Request) {
		b.validates.Add(1)
		writeData(w, b.validateResult)
	})
	mux.HandleFunc("POST /v1/events/1/ready", func(w http.ResponseWriter, r *http.Request) {
		b.readies.Add(1)
		writeData(w, Event{ID: 1, Status: EventStatusReady})
	})
	mux.HandleFunc("DELETE /v1/event-plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, nil)
	})
	mux.HandleFunc("POST /v1/event-plans", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			EventID        uint            `json:"eventId"`
			Title          string          `json:"title"`
			PricePerPerson decimal.Decimal `json:"pricePerPerson"`
			Currency       string          `json:"currency"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeData(w, EventPlan{
			ID:             7,
			EventID:        req.EventID,
			Title:          req.Title,
			PricePerPerson: req.PricePerPerson,
			Currency:       req.Currency,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestWorkflow(t *testing.T, b *draftBackend, cfg DraftConfig) *DraftWorkflow {
	t.Helper()
	srv := b.server(t)
	c := New(srv.URL)
	return NewDraftWorkflow(c, cfg)
}

func TestInitIsOneShot(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{})

	require.NoError(t, w.Init(context.Background()))
	require.NoError(t, w.Init(context.Background()))
	require.NoError(t, w.Init(context.Background()))

	assert.Equal(t, int64(1), b.creates.Load())
	assert.Equal(t, uint(1), w.EventID())
}

func TestAutoSaveFiresOncePerQuietWindow(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{AutoSaveInterval: 50 * time.Millisecond})
	require.NoError(t, w.Init(context.Background()))

	// A burst of edits inside the window must collapse to one PUT.
	w.Edit(func(f *DraftFields) { f.Title = "P" })
	time.Sleep(10 * time.Millisecond)
	w.Edit(func(f *DraftFields) { f.Title = "Po" })
	time.Sleep(10 * time.Millisecond)
	w.Edit(func(f *DraftFields) { f.Title = "Pottery Night" })

	assert.Equal(t, SaveStatusUnsaved, w.Status())

	assert.Eventually(t, func() bool {
		return w.Status() == SaveStatusSaved
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, int64(1), b.puts.Load())
}

func TestAutoSaveSkippedWhenNothingChanged(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{AutoSaveInterval: 30 * time.Millisecond})
	require.NoError(t, w.Init(context.Background()))

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int64(0), b.puts.Load())
	assert.Equal(t, SaveStatusSaved, w.Status())
}

func TestSaveNowFlushesImmediately(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{AutoSaveInterval: time.Hour})
	require.NoError(t, w.Init(context.Background()))

	w.Edit(func(f *DraftFields) { f.Description = "An evening of wheel throwing." })
	require.NoError(t, w.SaveNow(context.Background()))

	assert.Equal(t, int64(1), b.puts.Load())
	assert.Equal(t, SaveStatusSaved, w.Status())

	// No pending changes, a second manual save is a no-op.
	require.NoError(t, w.SaveNow(context.Background()))
	assert.Equal(t, int64(1), b.puts.Load())
}

func TestFailedSaveLeavesDraftUnsaved(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/events", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, Event{ID: 1, Status: EventStatusDraft})
	})
	mux.HandleFunc("PUT /v1/events/1", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "something broke")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	w := NewDraftWorkflow(New(srv.URL), DraftConfig{AutoSaveInterval: time.Hour})
	require.NoError(t, w.Init(context.Background()))

	w.Edit(func(f *DraftFields) { f.Title = "Broken" })
	err := w.SaveNow(context.Background())

	require.Error(t, err)
	assert.Equal(t, SaveStatusUnsaved, w.Status())
	assert.Equal(t, "something broke", w.LastSaveError())
}

func TestSubmitRequiresMediaAndPlan(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{})
	require.NoError(t, w.Init(context.Background()))

	result, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Ready)
	assert.Contains(t, result.Errors, "event must have at least one image")
	assert.Contains(t, result.Errors, "event must have at least one plan")

	// An incomplete draft never reaches the backend gate.
	assert.Equal(t, int64(0), b.validates.Load())
	assert.Equal(t, int64(0), b.readies.Load())
}

func TestSubmitHaltsOnServerValidationErrors(t *testing.T) {
	b := newDraftBackend()
	b.validateResult = ValidationResult{Valid: false, Errors: []string{"event category is required"}}
	w := newTestWorkflow(t, b, DraftConfig{})
	require.NoError(t, w.Init(context.Background()))

	w.Adopt(Event{
		ID:    1,
		Media: []EventMedia{{ID: 1, IsPrimary: true}},
		Plans: []EventPlan{{ID: 7}},
	})

	result, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Ready)
	assert.Equal(t, []string{"event category is required"}, result.Errors)
	assert.Equal(t, int64(1), b.validates.Load())
	assert.Equal(t, int64(0), b.readies.Load())
}

// Full authoring pass: draft, one 2MB JPEG, one 999 INR plan, submit.
func TestDraftToReadyScenario(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{AutoSaveInterval: time.Hour, DoneDisplayTime: 10 * time.Millisecond})
	ctx := context.Background()

	require.NoError(t, w.Init(ctx))

	w.Edit(func(f *DraftFields) {
		f.Title = "Sunrise Yoga"
		f.Description = "90 minutes on the rooftop."
	})

	photo := bytesOfSize(2 * 1024 * 1024)
	w.UploadImage(ctx, "rooftop.jpg", "image/jpeg", int64(len(photo)), bytesReader(photo), nil)

	require.Eventually(t, func() bool {
		return len(w.Media()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, w.Media()[0].IsPrimary, "first image becomes the cover")

	plan, err := w.AddPlan(ctx, PlanInput{
		Title:          "Standard",
		PricePerPerson: decimal.NewFromInt(999),
		Currency:       "INR",
		Items:          []PlanItemInput{{Title: "Mat rental"}},
	})
	require.NoError(t, err)
	assert.True(t, plan.PricePerPerson.Equal(decimal.NewFromInt(999)))

	result, err := w.Submit(ctx)
	require.NoError(t, err)

	assert.True(t, result.Ready)
	assert.Equal(t, int64(1), b.validates.Load())
	assert.Equal(t, int64(1), b.readies.Load())
	// The unsaved edits were flushed before validation.
	assert.Equal(t, int64(1), b.puts.Load())
	assert.Equal(t, SaveStatusSaved, w.Status())
}

func TestRemovePlanDeletesWhole(t *testing.T) {
	b := newDraftBackend()
	w := newTestWorkflow(t, b, DraftConfig{})
	w.Adopt(Event{ID: 1, Plans: []EventPlan{
		{ID: 7, Title: "Standard"},
		{ID: 8, Title: "Premium"},
	}})

	require.NoError(t, w.RemovePlan(context.Background(), 7))

	plans := w.Plans()
	require.Len(t, plans, 1)
	assert.Equal(t, uint(8), plans[0].ID)
}
