package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/logging"
	"github.com/dmitrijs2005/telephoto/internal/models"
)

// Default page sizes for one enumeration pass. The scan is deliberately
// bounded and non-exhaustive; a backlog larger than the page size drains
// across successive runs only as far as these windows reach.
const (
	DefaultImagePageSize = 200
	DefaultVideoPageSize = 50
	DefaultAlbumPageSize = 50
)

// PageSizes bounds one enumeration pass.
type PageSizes struct {
	Images int
	Videos int
	// PerAlbum applies when enumeration is scoped to selected albums.
	PerAlbum int
}

// DefaultPageSizes returns the standard enumeration bounds.
func DefaultPageSizes() PageSizes {
	return PageSizes{
		Images:   DefaultImagePageSize,
		Videos:   DefaultVideoPageSize,
		PerAlbum: DefaultAlbumPageSize,
	}
}

// Enumerator produces the candidate asset list for one sync run.
type Enumerator struct {
	lib   Library
	sizes PageSizes
	log   logging.Logger
}

func NewEnumerator(lib Library, sizes PageSizes, log logging.Logger) *Enumerator {
	if sizes.Images <= 0 {
		sizes.Images = DefaultImagePageSize
	}
	if sizes.Videos <= 0 {
		sizes.Videos = DefaultVideoPageSize
	}
	if sizes.PerAlbum <= 0 {
		sizes.PerAlbum = DefaultAlbumPageSize
	}
	return &Enumerator{lib: lib, sizes: sizes, log: log}
}

// Enumerate lists candidate assets newest first. With an empty scope it
// fetches the most recent page of images and, separately, of videos (images
// first); with a non-empty scope it fetches up to the per-album page size
// from each album in scope order. A denied media permission yields an empty
// list, not an error.
func (e *Enumerator) Enumerate(ctx context.Context, albumIDs []string) ([]models.MediaAsset, error) {
	granted, err := e.lib.RequestPermission(ctx)
	if errors.Is(err, common.ErrPermissionDenied) {
		// Same degrade-to-empty contract as an ordinary denial.
		e.log.Warn(ctx, "media library permission denied, skipping enumeration", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("media permission: %w", err)
	}
	if !granted {
		e.log.Warn(ctx, "media library permission denied, skipping enumeration")
		return nil, nil
	}

	if len(albumIDs) == 0 {
		return e.enumerateAll(ctx)
	}
	return e.enumerateAlbums(ctx, albumIDs)
}

func (e *Enumerator) enumerateAll(ctx context.Context) ([]models.MediaAsset, error) {
	images, err := e.lib.Assets(ctx, ListOptions{Kind: models.KindImage, Limit: e.sizes.Images})
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	videos, err := e.lib.Assets(ctx, ListOptions{Kind: models.KindVideo, Limit: e.sizes.Videos})
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	return append(images, videos...), nil
}

func (e *Enumerator) enumerateAlbums(ctx context.Context, albumIDs []string) ([]models.MediaAsset, error) {
	var result []models.MediaAsset
	for _, id := range albumIDs {
		assets, err := e.lib.Assets(ctx, ListOptions{AlbumID: id, Limit: e.sizes.PerAlbum})
		if err != nil {
			return nil, fmt.Errorf("list album %s: %w", id, err)
		}
		result = append(result, assets...)
	}
	return result, nil
}
