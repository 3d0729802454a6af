// Package pipeline implements the upload pipeline: a bounded worker pool
// that drives queue items from pending through uploading to success or
// failed, with exponential retry backoff, writing confirmed uploads to the
// ledger.
package pipeline

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/telephoto/internal/models"
)

// Status is a queue item's position in the upload state machine.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
)

// Item is the transient, in-memory unit of work for one asset's upload.
// Items live for the duration of one pipeline run and are never persisted;
// the ledger alone prevents re-uploading after a restart.
type Item struct {
	id    string
	asset models.MediaAsset

	mu         sync.Mutex
	status     Status
	progress   int
	retryCount int
	err        error
}

// NewItem creates a pending item for the asset.
func NewItem(asset models.MediaAsset) *Item {
	return &Item{
		id:     uuid.NewString(),
		asset:  asset,
		status: StatusPending,
	}
}

func (i *Item) ID() string               { return i.id }
func (i *Item) Asset() models.MediaAsset { return i.asset }

func (i *Item) Status() Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

func (i *Item) Progress() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.progress
}

func (i *Item) RetryCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.retryCount
}

// Err returns the last upload error; set while pending for retry and on
// terminal failure.
func (i *Item) Err() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.err
}

// View is a consistent snapshot of an item for observers.
type View struct {
	ID         string
	AssetURI   string
	Name       string
	Kind       models.MediaKind
	Status     Status
	Progress   int
	RetryCount int
	Err        error
}

func (i *Item) View() View {
	i.mu.Lock()
	defer i.mu.Unlock()
	return View{
		ID:         i.id,
		AssetURI:   i.asset.URI,
		Name:       i.asset.DisplayName,
		Kind:       i.asset.Kind,
		Status:     i.status,
		Progress:   i.progress,
		RetryCount: i.retryCount,
		Err:        i.err,
	}
}

// Reset returns a failed item to pending with a fresh retry budget, for a
// caller-initiated manual retry. Resetting a non-failed item is a no-op
// and reports false.
func (i *Item) Reset() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.status != StatusFailed {
		return false
	}
	i.status = StatusPending
	i.retryCount = 0
	i.progress = 0
	i.err = nil
	return true
}

func (i *Item) markUploading() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.status = StatusUploading
}

// setProgress records in-flight upload progress. Values are clamped to
// [0,99] and never decrease; 100 is reserved for the success transition.
func (i *Item) setProgress(pct int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if pct > 99 {
		pct = 99
	}
	if pct > i.progress {
		i.progress = pct
	}
}

func (i *Item) succeed() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.status = StatusSuccess
	i.progress = 100
	i.err = nil
}

// scheduleRetry moves the item back to pending, increments the retry
// count, and returns the new count.
func (i *Item) scheduleRetry(err error) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.status = StatusPending
	i.retryCount++
	i.err = err
	return i.retryCount
}

func (i *Item) fail(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.status = StatusFailed
	i.err = err
}
