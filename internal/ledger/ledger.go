// Package ledger provides the durable upload ledger: the record of which
// local assets have been placed in the remote store, the extracted-text
// index behind search, and the folder grouping used by the browsing
// surface. The ledger both drives deduplication and is the engine's only
// correctness-critical persistence.
package ledger

import (
	"context"

	"github.com/dmitrijs2005/telephoto/internal/models"
)

// Repository describes the ledger operations. Implementations are backed
// by a local SQLite database.
type Repository interface {
	// IsUploaded reports whether an upload record exists for the asset URI.
	// On a storage fault it returns (false, err): callers must treat the
	// asset as not uploaded (so it is retried rather than silently
	// dropped) while still being able to tell "definitely not uploaded"
	// from "status unknown".
	IsUploaded(ctx context.Context, assetURI string) (bool, error)

	// MarkUploaded records a confirmed upload. The insert is idempotent:
	// marking an already-recorded URI is a no-op, not an error.
	MarkUploaded(ctx context.Context, assetURI, remoteFileID string, kind models.MediaKind, displayName string) error

	// Get returns the upload record for the asset URI, or
	// common.ErrNotFound when none exists.
	Get(ctx context.Context, assetURI string) (models.UploadRecord, error)

	// RecordText stores (or replaces) the extracted text for an image.
	RecordText(ctx context.Context, assetURI, text string) error

	// TextFor returns the extracted text for the asset URI, or
	// common.ErrNotFound when nothing has been indexed.
	TextFor(ctx context.Context, assetURI string) (string, error)

	// CountUploaded returns the number of upload records.
	CountUploaded(ctx context.Context) (int, error)

	// ListUploaded lists upload records newest first. A non-empty kind
	// restricts the listing to that media kind.
	ListUploaded(ctx context.Context, kind models.MediaKind) ([]models.UploadRecord, error)

	// SearchByText returns the records whose extracted text contains the
	// query (case-insensitive substring), newest first.
	SearchByText(ctx context.Context, query string) ([]models.UploadRecord, error)

	// Remove deletes the upload record for the asset URI together with its
	// text entry and folder links, in one transaction. Part of the
	// user-initiated removal path; the sync engine itself never deletes.
	Remove(ctx context.Context, assetURI string) error

	// CreateFolder creates a named folder; creating an existing folder is
	// a no-op.
	CreateFolder(ctx context.Context, name string) error

	// Folders lists folders newest first.
	Folders(ctx context.Context) ([]models.Folder, error)

	// AddToFolder links an uploaded file to a folder, both addressed by
	// their natural keys. Returns common.ErrNotFound when either side
	// does not exist.
	AddToFolder(ctx context.Context, assetURI, folderName string) error

	// FilesInFolder lists the folder's files newest first.
	FilesInFolder(ctx context.Context, folderName string) ([]models.UploadRecord, error)

	// Stats summarizes the ledger for the browsing surface.
	Stats(ctx context.Context) (models.StorageStats, error)
}
