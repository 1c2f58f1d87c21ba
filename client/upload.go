package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UploadStatus string

const (
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusDone      UploadStatus = "done"
	UploadStatusError     UploadStatus = "error"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadItem is one entry in the visible upload queue. Items that fail
// validation never leave the error state and never touch the network.
type UploadItem struct {
	ID       string
	FileName string
	Status   UploadStatus
	Progress int
	Error    string
}

// UploadImage validates the file and, if it passes, starts the upload in
// the background. Uploads run concurrently and may complete out of order.
// The returned id identifies the queue entry for Dismiss.
func (w *DraftWorkflow) UploadImage(ctx context.Context, fileName, mimeType string, size int64, content io.Reader, onProgress func(percent int)) string {
	item := &UploadItem{
		ID:       uuid.NewString(),
		FileName: fileName,
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case !w.initialized:
		item.Status = UploadStatusError
		item.Error = ErrDraftNotInitialized.Error()
	case !allowedImageTypes[mimeType]:
		item.Status = UploadStatusError
		item.Error = "unsupported image type, allowed types are jpeg, png and webp"
	case size > w.cfg.MaxFileSize:
		item.Status = UploadStatusError
		item.Error = fmt.Sprintf("file exceeds the %dMB limit", w.cfg.MaxFileSize/(1024*1024))
	case len(w.media)+w.inFlightLocked() >= w.cfg.MaxImages:
		item.Status = UploadStatusError
		item.Error = fmt.Sprintf("an event can have at most %d images", w.cfg.MaxImages)
	default:
		item.Status = UploadStatusUploading
	}

	w.queue = append(w.queue, item)

	if item.Status == UploadStatusUploading {
		go w.runUpload(ctx, item, fileName, mimeType, size, content, onProgress)
	}

	return item.ID
}

// Queue returns a snapshot of the visible upload queue.
func (w *DraftWorkflow) Queue() []UploadItem {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]UploadItem, len(w.queue))
	for i, item := range w.queue {
		out[i] = *item
	}
	return out
}

// Dismiss removes an errored item from the queue. Completed items evict
// themselves after the display delay.
func (w *DraftWorkflow) Dismiss(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removeFromQueueLocked(id)
}

func (w *DraftWorkflow) inFlightLocked() int {
	n := 0
	for _, item := range w.queue {
		if item.Status == UploadStatusUploading {
			n++
		}
	}
	return n
}

func (w *DraftWorkflow) removeFromQueueLocked(id string) {
	for i, item := range w.queue {
		if item.ID == id {
			w.queue = append(w.queue[:i], w.queue[i+1:]...)
			return
		}
	}
}

func (w *DraftWorkflow) runUpload(ctx context.Context, item *UploadItem, fileName, mimeType string, size int64, content io.Reader, onProgress func(percent int)) {
	w.mu.Lock()
	eventID := w.eventID
	w.mu.Unlock()

	media, err := w.uploadMedia(ctx, eventID, fileName, mimeType, content, func(percent int) {
		w.mu.Lock()
		item.Progress = percent
		w.mu.Unlock()
		if onProgress != nil {
			onProgress(percent)
		}
	})

	w.mu.Lock()
	if err != nil {
		item.Status = UploadStatusError
		item.Error = err.Error()
		w.mu.Unlock()
		w.logger.Warn("media upload failed",
			zap.String("file", fileName),
			zap.Error(err),
		)
		return
	}

	item.Status = UploadStatusDone
	item.Progress = 100
	w.media = append(w.media, *media)
	w.mu.Unlock()

	time.AfterFunc(w.cfg.DoneDisplayTime, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		for _, queued := range w.queue {
			if queued.ID == item.ID && queued.Status == UploadStatusDone {
				w.removeFromQueueLocked(item.ID)
				return
			}
		}
	})
}

func (w *DraftWorkflow) uploadMedia(ctx context.Context, eventID uint, fileName, mimeType string, content io.Reader, onProgress func(percent int)) (*EventMedia, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	body := &progressReader{
		r:          &buf,
		total:      int64(buf.Len()),
		onProgress: onProgress,
	}

	var media EventMedia
	path := fmt.Sprintf("/events/%d/media", eventID)
	if err := w.c.do(ctx, "POST", path, body, writer.FormDataContentType(), &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// progressReader reports how much of the request body has been read, which
// tracks bytes handed to the transport.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if p.onProgress != nil && p.total > 0 {
			p.onProgress(int(p.read * 100 / p.total))
		}
	}
	return n, err
}
