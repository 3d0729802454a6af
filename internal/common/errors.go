// Package common defines shared constants and sentinel errors used across
// telephoto components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Orchestrator-level errors.
	ErrSyncInProgress = errors.New("sync already in progress")

	// Media-library errors.
	ErrPermissionDenied = errors.New("media access denied")

	// Remote-storage errors.
	ErrNotConfigured = errors.New("remote storage not configured")
)
