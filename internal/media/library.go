// Package media abstracts the device media index and implements the bounded
// asset enumeration that feeds the sync engine.
package media

import (
	"context"

	"github.com/dmitrijs2005/telephoto/internal/models"
)

// ListOptions narrows an asset listing. Results are always newest first.
type ListOptions struct {
	// Kind restricts results to one media kind; empty means any kind.
	Kind models.MediaKind
	// AlbumID restricts results to one album; empty means the whole library.
	AlbumID string
	// Limit bounds the number of returned assets. Zero means no bound.
	Limit int
}

// Library is the device media index the engine enumerates from.
type Library interface {
	// RequestPermission asks for read access to the media index. A false
	// result is not an error; the engine degrades to a no-op run.
	RequestPermission(ctx context.Context) (bool, error)

	// Assets lists media assets newest first, narrowed by opts.
	Assets(ctx context.Context, opts ListOptions) ([]models.MediaAsset, error)

	// Albums lists the available albums.
	Albums(ctx context.Context) ([]models.Album, error)
}
