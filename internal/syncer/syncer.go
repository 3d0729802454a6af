// Package syncer orchestrates one sync run: evaluate the settings gate,
// enumerate candidate assets, drop the ones already in the ledger and
// hand the rest to the upload pipeline.
package syncer

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/logging"
	"github.com/dmitrijs2005/telephoto/internal/models"
	"github.com/dmitrijs2005/telephoto/internal/pipeline"
	"github.com/dmitrijs2005/telephoto/internal/settings"
)

// Gate decides whether a run may proceed and with what album scope.
type Gate interface {
	Evaluate(ctx context.Context, background bool) (settings.Decision, error)
}

// Enumerator lists the candidate assets for a run.
type Enumerator interface {
	Enumerate(ctx context.Context, albumIDs []string) ([]models.MediaAsset, error)
}

// Ledger is the slice of the upload ledger the orchestrator reads.
type Ledger interface {
	IsUploaded(ctx context.Context, assetURI string) (bool, error)
}

// Uploader drives queue items to a terminal state.
type Uploader interface {
	Run(ctx context.Context, items []*pipeline.Item) (int, error)
}

// Orchestrator serializes sync runs over a shared ledger and pipeline.
type Orchestrator struct {
	gate     Gate
	enum     Enumerator
	ledger   Ledger
	uploader Uploader
	log      logging.Logger

	// runMu admits one run at a time; overlapping attempts are rejected,
	// not queued.
	runMu sync.Mutex

	mu   sync.Mutex
	last []*pipeline.Item
}

func New(gate Gate, enum Enumerator, ledger Ledger, uploader Uploader, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		gate:     gate,
		enum:     enum,
		ledger:   ledger,
		uploader: uploader,
		log:      log,
	}
}

// Run performs one sync pass and returns the number of files uploaded.
// A run that the gate denies is a successful run that uploaded nothing.
// If another run is already active it returns common.ErrSyncInProgress.
func (o *Orchestrator) Run(ctx context.Context, background bool) (int, error) {
	if !o.runMu.TryLock() {
		return 0, common.ErrSyncInProgress
	}
	defer o.runMu.Unlock()

	dec, err := o.gate.Evaluate(ctx, background)
	if err != nil {
		return 0, err
	}
	if !dec.Allowed {
		o.log.Info(ctx, "sync skipped", "reason", dec.Reason, "background", background)
		return 0, nil
	}

	assets, err := o.enum.Enumerate(ctx, dec.AlbumIDs)
	if err != nil {
		return 0, fmt.Errorf("enumerate media: %w", err)
	}

	items := make([]*pipeline.Item, 0, len(assets))
	for _, a := range assets {
		uploaded, err := o.ledger.IsUploaded(ctx, a.URI)
		if err != nil {
			// Queue it anyway; the remote store tolerates a duplicate,
			// a silently skipped asset is never backed up.
			o.log.Warn(ctx, "upload check failed, queueing asset", "uri", a.URI, "error", err)
		}
		if uploaded {
			continue
		}
		items = append(items, pipeline.NewItem(a))
	}

	o.setLast(items)

	if len(items) == 0 {
		o.log.Info(ctx, "nothing to upload", "candidates", len(assets), "background", background)
		return 0, nil
	}

	o.log.Info(ctx, "sync started", "queued", len(items), "background", background)
	count, err := o.uploader.Run(ctx, items)
	o.log.Info(ctx, "sync finished", "uploaded", count, "queued", len(items), "background", background)
	return count, err
}

// RetryFailed resets the failed items of the last run and uploads them
// again, bypassing the gate: the retry is explicit user intent on items
// a previous, already-gated run produced.
func (o *Orchestrator) RetryFailed(ctx context.Context) (int, error) {
	if !o.runMu.TryLock() {
		return 0, common.ErrSyncInProgress
	}
	defer o.runMu.Unlock()

	var retry []*pipeline.Item
	o.mu.Lock()
	for _, it := range o.last {
		if it.Reset() {
			retry = append(retry, it)
		}
	}
	o.mu.Unlock()

	if len(retry) == 0 {
		return 0, nil
	}

	o.log.Info(ctx, "retrying failed uploads", "queued", len(retry))
	return o.uploader.Run(ctx, retry)
}

// Dismiss drops an item of the last run from the visible queue.
func (o *Orchestrator) Dismiss(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, it := range o.last {
		if it.ID() == id {
			o.last = append(o.last[:i], o.last[i+1:]...)
			return true
		}
	}
	return false
}

// Items snapshots the queue of the most recent run.
func (o *Orchestrator) Items() []pipeline.View {
	o.mu.Lock()
	defer o.mu.Unlock()
	views := make([]pipeline.View, 0, len(o.last))
	for _, it := range o.last {
		views = append(views, it.View())
	}
	return views
}

func (o *Orchestrator) setLast(items []*pipeline.Item) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last = items
}
