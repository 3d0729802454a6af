package models

import "time"

// UploadRecord is the ledger row recording a confirmed upload. At most one
// record exists per asset URI; its presence means the asset is durably in
// the remote store and must not be uploaded again.
type UploadRecord struct {
	ID           int64
	AssetURI     string
	RemoteFileID string
	Kind         MediaKind
	DisplayName  string
	UploadedAt   time.Time
}

// TextIndexEntry holds text extracted from an uploaded image. Its lifecycle
// is independent from the UploadRecord: extraction is best effort and may
// never happen.
type TextIndexEntry struct {
	AssetURI string
	Text     string
}

// Folder is a user-defined grouping of uploaded files.
type Folder struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// StorageStats summarizes the ledger contents for the browsing surface.
type StorageStats struct {
	TotalFiles int
	Images     int
	Videos     int
}
