package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type SaveStatus string

const (
	SaveStatusSaved   SaveStatus = "saved"
	SaveStatusUnsaved SaveStatus = "unsaved"
	SaveStatusSaving  SaveStatus = "saving"
)

const (
	// DefaultAutoSaveInterval is the debounce window: a PUT fires only
	// after this much inactivity since the last edit.
	DefaultAutoSaveInterval = 30 * time.Second
	// DefaultDoneDisplayTime is how long a finished upload stays visible
	// in the queue before it is evicted.
	DefaultDoneDisplayTime = 2 * time.Second
	// DefaultMaxImages caps uploaded plus in-flight images on one event.
	DefaultMaxImages = 10
	// DefaultMaxFileSize is the per-file upload limit (10MB).
	DefaultMaxFileSize = int64(10 * 1024 * 1024)
)

var ErrDraftNotInitialized = errors.New("draft has not been initialized")

// DraftFields are the editable fields of the event being authored.
type DraftFields struct {
	Title            string
	Description      string
	ShortDescription string
	CategoryID       *uint
	DurationMinutes  int
	MinParticipants  int
	MaxParticipants  int
	AgeRestriction   *AgeRestriction
	Difficulty       string
	IsFeatured       bool
}

type DraftConfig struct {
	AutoSaveInterval time.Duration
	DoneDisplayTime  time.Duration
	MaxImages        int
	MaxFileSize      int64
}

func (cfg *DraftConfig) applyDefaults() {
	if cfg.AutoSaveInterval == 0 {
		cfg.AutoSaveInterval = DefaultAutoSaveInterval
	}
	if cfg.DoneDisplayTime == 0 {
		cfg.DoneDisplayTime = DefaultDoneDisplayTime
	}
	if cfg.MaxImages == 0 {
		cfg.MaxImages = DefaultMaxImages
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
}

// DraftWorkflow manages the lifecycle of one event being authored, from a
// blank draft through auto-saved edits to "submitted for review". Errors
// are kept per operation; nothing is retried automatically.
type DraftWorkflow struct {
	c      *Client
	cfg    DraftConfig
	logger *zap.Logger

	mu            sync.Mutex
	eventID       uint
	initialized   bool
	fields        DraftFields
	dirty         bool
	editSeq       uint64
	status        SaveStatus
	timer         *time.Timer
	lastSaveError string
	media         []EventMedia
	plans         []EventPlan
	queue         []*UploadItem
}

func NewDraftWorkflow(c *Client, cfg DraftConfig) *DraftWorkflow {
	cfg.applyDefaults()
	return &DraftWorkflow{
		c:      c,
		cfg:    cfg,
		logger: c.logger,
		status: SaveStatusSaved,
	}
}

// Init creates the backing draft with a placeholder title and remembers
// its id for every later call. The one-shot flag guards against duplicate
// drafts when Init races with itself; a failed attempt re-arms it.
func (w *DraftWorkflow) Init(ctx context.Context) error {
	w.mu.Lock()
	if w.initialized {
		w.mu.Unlock()
		return nil
	}
	w.initialized = true
	w.mu.Unlock()

	var event Event
	if err := w.c.post(ctx, "/events", CreateEventInput{Title: ""}, &event); err != nil {
		w.mu.Lock()
		w.initialized = false
		w.mu.Unlock()
		return err
	}

	w.mu.Lock()
	w.adoptLocked(event)
	w.mu.Unlock()

	w.logger.Debug("draft initialized", zap.Uint("event_id", event.ID))
	return nil
}

// Adopt resumes authoring of an existing draft event.
func (w *DraftWorkflow) Adopt(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.initialized = true
	w.adoptLocked(event)
}

func (w *DraftWorkflow) adoptLocked(event Event) {
	w.eventID = event.ID
	w.fields = DraftFields{
		Title:            event.Title,
		Description:      event.Description,
		ShortDescription: event.ShortDescription,
		CategoryID:       event.CategoryID,
		DurationMinutes:  event.DurationMinutes,
		MinParticipants:  event.MinParticipants,
		MaxParticipants:  event.MaxParticipants,
		AgeRestriction:   &event.AgeRestriction,
		Difficulty:       event.Difficulty,
		IsFeatured:       event.IsFeatured,
	}
	w.media = append([]EventMedia(nil), event.Media...)
	w.plans = append([]EventPlan(nil), event.Plans...)
	w.dirty = false
	w.status = SaveStatusSaved
}

func (w *DraftWorkflow) EventID() uint {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.eventID
}

func (w *DraftWorkflow) Status() SaveStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// LastSaveError is the message of the most recent failed save, empty after
// a successful one.
func (w *DraftWorkflow) LastSaveError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSaveError
}

func (w *DraftWorkflow) Fields() DraftFields {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields
}

func (w *DraftWorkflow) Media() []EventMedia {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]EventMedia(nil), w.media...)
}

func (w *DraftWorkflow) Plans() []EventPlan {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]EventPlan(nil), w.plans...)
}

// Edit applies a field change, marks the draft unsaved and restarts the
// debounce window. Only the last edit inside the window triggers a save.
func (w *DraftWorkflow) Edit(apply func(*DraftFields)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	apply(&w.fields)
	w.dirty = true
	w.editSeq++
	w.status = SaveStatusUnsaved

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.AutoSaveInterval, w.autoSave)
}

func (w *DraftWorkflow) autoSave() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := w.save(ctx); err != nil {
		w.logger.Warn("auto-save failed", zap.Error(err))
	}
}

// SaveNow forces an immediate save regardless of the debounce timer.
func (w *DraftWorkflow) SaveNow(ctx context.Context) error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return w.save(ctx)
}

func (w *DraftWorkflow) save(ctx context.Context) error {
	w.mu.Lock()
	if !w.initialized {
		w.mu.Unlock()
		return ErrDraftNotInitialized
	}
	if !w.dirty {
		w.status = SaveStatusSaved
		w.mu.Unlock()
		return nil
	}
	seq := w.editSeq
	eventID := w.eventID
	payload := fullPayload(w.fields)
	w.status = SaveStatusSaving
	w.mu.Unlock()

	var event Event
	err := w.c.put(ctx, fmt.Sprintf("/events/%d", eventID), payload, &event)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.status = SaveStatusUnsaved
		w.lastSaveError = err.Error()
		return err
	}

	w.lastSaveError = ""
	if w.editSeq == seq {
		w.dirty = false
		w.status = SaveStatusSaved
	} else {
		// Edits arrived while the PUT was in flight.
		w.status = SaveStatusUnsaved
	}
	return nil
}

// fullPayload sends every field on each save, the backend treats the PUT
// as the complete draft state.
func fullPayload(f DraftFields) map[string]interface{} {
	payload := map[string]interface{}{
		"title":            f.Title,
		"description":      f.Description,
		"shortDescription": f.ShortDescription,
		"durationMinutes":  f.DurationMinutes,
		"minParticipants":  f.MinParticipants,
		"maxParticipants":  f.MaxParticipants,
		"isFeatured":       f.IsFeatured,
	}
	if f.CategoryID != nil {
		payload["categoryId"] = *f.CategoryID
	}
	if f.AgeRestriction != nil {
		payload["ageRestriction"] = *f.AgeRestriction
	}
	if f.Difficulty != "" {
		payload["difficulty"] = f.Difficulty
	}
	return payload
}

// SetPrimary flags one media item as the cover image. The backend response
// is the authoritative media list, with exactly one primary item.
func (w *DraftWorkflow) SetPrimary(ctx context.Context, mediaID uint) error {
	w.mu.Lock()
	eventID := w.eventID
	w.mu.Unlock()
	if eventID == 0 {
		return ErrDraftNotInitialized
	}

	var media []EventMedia
	if err := w.c.put(ctx, fmt.Sprintf("/events/%d/media/%d/primary", eventID, mediaID), nil, &media); err != nil {
		return err
	}

	w.mu.Lock()
	w.media = media
	w.mu.Unlock()
	return nil
}

func (w *DraftWorkflow) DeleteMedia(ctx context.Context, mediaID uint) error {
	w.mu.Lock()
	eventID := w.eventID
	w.mu.Unlock()
	if eventID == 0 {
		return ErrDraftNotInitialized
	}

	if err := w.c.delete(ctx, fmt.Sprintf("/events/%d/media/%d", eventID, mediaID)); err != nil {
		return err
	}

	w.mu.Lock()
	for i := range w.media {
		if w.media[i].ID == mediaID {
			w.media = append(w.media[:i], w.media[i+1:]...)
			break
		}
	}
	w.mu.Unlock()
	return nil
}

// AddPlan persists the locally composed plan and its items in one atomic
// request.
func (w *DraftWorkflow) AddPlan(ctx context.Context, input PlanInput) (*EventPlan, error) {
	w.mu.Lock()
	eventID := w.eventID
	w.mu.Unlock()
	if eventID == 0 {
		return nil, ErrDraftNotInitialized
	}

	body := struct {
		EventID uint `json:"eventId"`
		PlanInput
	}{EventID: eventID, PlanInput: input}

	var plan EventPlan
	if err := w.c.post(ctx, "/event-plans", body, &plan); err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.plans = append(w.plans, plan)
	w.mu.Unlock()
	return &plan, nil
}

// RemovePlan deletes a plan whole; there is no partial item editing.
func (w *DraftWorkflow) RemovePlan(ctx context.Context, planID uint) error {
	if err := w.c.delete(ctx, fmt.Sprintf("/event-plans/%d", planID)); err != nil {
		return err
	}

	w.mu.Lock()
	for i := range w.plans {
		if w.plans[i].ID == planID {
			w.plans = append(w.plans[:i], w.plans[i+1:]...)
			break
		}
	}
	w.mu.Unlock()
	return nil
}

// SubmitResult reports the outcome of a submit-for-review attempt. When
// Ready is false, Errors carries the validation messages to surface.
type SubmitResult struct {
	Ready  bool
	Errors []string
}

// Submit flushes unsaved edits, runs the validation gate and, only if the
// event is complete, asks the backend to mark it READY. The media and plan
// minimums are checked locally first so an obviously incomplete draft
// never reaches the ready endpoint.
func (w *DraftWorkflow) Submit(ctx context.Context) (*SubmitResult, error) {
	w.mu.Lock()
	if !w.initialized {
		w.mu.Unlock()
		return nil, ErrDraftNotInitialized
	}
	eventID := w.eventID
	dirty := w.dirty
	mediaCount := len(w.media)
	planCount := len(w.plans)
	w.mu.Unlock()

	if dirty {
		if err := w.SaveNow(ctx); err != nil {
			return nil, err
		}
	}

	var precheck []string
	if mediaCount < 1 {
		precheck = append(precheck, "event must have at least one image")
	}
	if planCount < 1 {
		precheck = append(precheck, "event must have at least one plan")
	}
	if len(precheck) > 0 {
		return &SubmitResult{Ready: false, Errors: precheck}, nil
	}

	var result ValidationResult
	if err := w.c.get(ctx, fmt.Sprintf("/events/%d/validate", eventID), &result); err != nil {
		return nil, err
	}
	if !result.Valid {
		return &SubmitResult{Ready: false, Errors: result.Errors}, nil
	}

	var event Event
	if err := w.c.post(ctx, fmt.Sprintf("/events/%d/ready", eventID), nil, &event); err != nil {
		return nil, err
	}

	w.logger.Info("event submitted for review", zap.Uint("event_id", eventID))
	return &SubmitResult{Ready: true}, nil
}
