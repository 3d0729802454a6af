// Package models defines the data types shared between the ledger, the
// media library, and the sync engine.
package models

import "time"

// MediaKind classifies a media asset.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// MediaAsset describes one item of the device media index. Assets are
// produced by a media.Library and are never mutated by the engine.
type MediaAsset struct {
	// ID is the library's stable identifier for the asset.
	ID string
	// URI locates the asset's content and keys the upload ledger.
	URI  string
	Kind MediaKind
	// DisplayName is the human-readable file name.
	DisplayName string
	CreatedAt   time.Time
	// AlbumID is the owning album, empty when the asset was enumerated
	// without album scope.
	AlbumID string
}

// Album is a named group of assets in the device media index.
type Album struct {
	ID   string
	Name string
}
