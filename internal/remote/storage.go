// Package remote defines the remote file-store contract the sync engine
// uploads into, with a Telegram Bot API implementation (the chat-based
// store media is backed up to) and an S3-compatible alternative.
package remote

import (
	"context"

	"github.com/dmitrijs2005/telephoto/internal/models"
)

// UploadRequest describes one file upload.
type UploadRequest struct {
	// Path is the local path of the file content.
	Path string
	// Name is the display name to publish the file under.
	Name string
	Kind models.MediaKind
	// Progress, when non-nil, receives a monotone percentage in [0,99]
	// while the request body is being sent. The terminal 100 is reported
	// by the pipeline at the success transition, not by the adapter.
	Progress func(pct int)
}

// Storage is a remote object store. Identifiers returned by Upload are
// opaque to callers; only the adapter that minted one can resolve or
// delete it. Every method may fail with a transport error, which the
// upload pipeline treats as retryable.
type Storage interface {
	// Upload stores the file and returns its remote identifier.
	Upload(ctx context.Context, req UploadRequest) (string, error)

	// ResolveDownloadURL exchanges a remote identifier for a fetchable URL.
	ResolveDownloadURL(ctx context.Context, remoteID string) (string, error)

	// Delete removes the remote object.
	Delete(ctx context.Context, remoteID string) error
}
