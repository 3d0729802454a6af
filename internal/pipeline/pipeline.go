package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/telephoto/internal/logging"
	"github.com/dmitrijs2005/telephoto/internal/models"
	"github.com/dmitrijs2005/telephoto/internal/ocr"
	"github.com/dmitrijs2005/telephoto/internal/remote"
)

const (
	DefaultWorkers    = 4
	DefaultMaxRetries = 3

	defaultBackoffBase = time.Second
)

// Ledger is the slice of the upload ledger the pipeline writes to.
type Ledger interface {
	MarkUploaded(ctx context.Context, assetURI, remoteFileID string, kind models.MediaKind, displayName string) error
	RecordText(ctx context.Context, assetURI, text string) error
}

// Config tunes the pipeline. Zero values fall back to the defaults.
type Config struct {
	// Workers caps how many uploads run concurrently.
	Workers int
	// MaxRetries is how many times a failed upload is re-attempted
	// before the item is marked failed.
	MaxRetries int
	// BackoffBase is the unit of the exponential retry delay; attempt n
	// waits BackoffBase << n.
	BackoffBase time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = defaultBackoffBase
	}
	return c
}

// Pipeline uploads queue items to remote storage with a bounded worker
// pool. A retry delay suspends only the failed item; the worker that hit
// the failure immediately picks up other queued work.
type Pipeline struct {
	storage    remote.Storage
	ledger     Ledger
	recognizer ocr.Recognizer
	log        logging.Logger
	cfg        Config
}

func New(storage remote.Storage, ledger Ledger, recognizer ocr.Recognizer, log logging.Logger, cfg Config) *Pipeline {
	if recognizer == nil {
		recognizer = ocr.Disabled{}
	}
	return &Pipeline{
		storage:    storage,
		ledger:     ledger,
		recognizer: recognizer,
		log:        log,
		cfg:        cfg.withDefaults(),
	}
}

// run holds the shared accounting of one Run call. Each item occupies at
// most one queue slot at a time, so with capacity len(items) sends never
// block.
type run struct {
	queue chan *Item

	// pending counts items that have not reached a terminal state yet.
	pending sync.WaitGroup

	mu         sync.Mutex
	ledgerErrs []error
}

func (r *run) addLedgerErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledgerErrs = append(r.ledgerErrs, err)
}

// Run uploads every item and blocks until each one is terminal. It
// returns the number of successful uploads; the error aggregates ledger
// write failures, the one fault that leaves remote state ahead of local
// state. Cancelling ctx fails all unfinished items and returns promptly.
func (p *Pipeline) Run(ctx context.Context, items []*Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	r := &run{queue: make(chan *Item, len(items))}
	r.pending.Add(len(items))
	for _, it := range items {
		r.queue <- it
	}

	done := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(done)
	}()

	g := new(errgroup.Group)
	for w := 0; w < p.cfg.Workers; w++ {
		g.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				case <-ctx.Done():
					return nil
				case it := <-r.queue:
					p.process(ctx, g, r, it)
				}
			}
		})
	}
	_ = g.Wait()

	// After cancellation nothing will drain the queue, so fail whatever
	// is still waiting to keep the accounting consistent.
	if ctx.Err() != nil {
		for {
			select {
			case it := <-r.queue:
				it.fail(ctx.Err())
				r.pending.Done()
				continue
			default:
			}
			break
		}
	}
	<-done

	count := 0
	for _, it := range items {
		if it.Status() == StatusSuccess {
			count++
		}
	}
	return count, errors.Join(r.ledgerErrs...)
}

func (p *Pipeline) process(ctx context.Context, g *errgroup.Group, r *run, it *Item) {
	it.markUploading()
	p.log.Debug(ctx, "uploading", "uri", it.Asset().URI, "attempt", it.RetryCount()+1)

	remoteID, err := p.storage.Upload(ctx, remote.UploadRequest{
		Path:     it.Asset().URI,
		Name:     it.Asset().DisplayName,
		Kind:     it.Asset().Kind,
		Progress: it.setProgress,
	})
	if err == nil {
		p.finish(ctx, r, it, remoteID)
		return
	}

	if ctx.Err() != nil || it.RetryCount() >= p.cfg.MaxRetries {
		it.fail(err)
		r.pending.Done()
		p.log.Warn(ctx, "upload failed", "uri", it.Asset().URI, "retries", it.RetryCount(), "error", err)
		return
	}

	retries := it.scheduleRetry(err)
	delay := p.cfg.BackoffBase << retries
	p.log.Debug(ctx, "upload retry scheduled", "uri", it.Asset().URI, "retry", retries, "delay", delay, "error", err)

	// The delay parks only this item; the worker is already free. The
	// timer goroutine joins the errgroup so Run outlives every requeue.
	g.Go(func() error {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
			r.queue <- it
		case <-ctx.Done():
			it.fail(ctx.Err())
			r.pending.Done()
		}
		return nil
	})
}

// finish runs the success path: ledger write first, then the terminal
// transition, then best-effort text extraction for images.
func (p *Pipeline) finish(ctx context.Context, r *run, it *Item, remoteID string) {
	defer r.pending.Done()

	asset := it.Asset()
	if err := p.markUploaded(ctx, asset, remoteID); err != nil {
		it.fail(fmt.Errorf("ledger write: %w", err))
		r.addLedgerErr(fmt.Errorf("record upload %s: %w", asset.URI, err))
		p.log.Error(ctx, "upload succeeded but ledger write failed", "uri", asset.URI, "error", err)
		return
	}

	it.succeed()
	p.log.Info(ctx, "uploaded", "uri", asset.URI, "remote_id", remoteID)

	if asset.Kind == models.KindImage {
		p.extractText(ctx, asset)
	}
}

// markUploaded retries transient ledger faults before giving up; missing
// the record would re-upload the asset on the next run.
func (p *Pipeline) markUploaded(ctx context.Context, asset models.MediaAsset, remoteID string) error {
	b := retry.WithMaxRetries(2, retry.NewFibonacci(100*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := p.ledger.MarkUploaded(ctx, asset.URI, remoteID, asset.Kind, asset.DisplayName); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (p *Pipeline) extractText(ctx context.Context, asset models.MediaAsset) {
	text, err := p.recognizer.Recognize(ctx, asset.URI)
	if err != nil {
		p.log.Debug(ctx, "text extraction failed", "uri", asset.URI, "error", err)
		return
	}
	if text == "" {
		return
	}
	if err := p.ledger.RecordText(ctx, asset.URI, text); err != nil {
		p.log.Warn(ctx, "recording extracted text failed", "uri", asset.URI, "error", err)
	}
}
