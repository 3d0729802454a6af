// Package settings provides the typed view over the user's sync preferences
// and the gate that decides whether a sync run may proceed.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/prefs"
)

// Preference keys. The names match what the settings screens write.
const (
	keyAutoBackup     = "settings.autoBackup"
	keyWifiOnly       = "settings.wifiOnly"
	keyBackgroundSync = "settings.backgroundSync"
	keySelectedAlbums = "settings.selectedAlbums"
)

// SyncSettings is the engine's read-only snapshot of the sync preferences.
type SyncSettings struct {
	// AutoBackup gates background-initiated runs.
	AutoBackup bool
	// WifiOnly restricts runs to unmetered connections.
	WifiOnly bool
	// BackgroundSync enables the periodic background trigger.
	BackgroundSync bool
	// SelectedAlbumIDs scopes enumeration; empty means all albums.
	SelectedAlbumIDs []string
}

// Defaults returns the out-of-the-box settings: nothing uploads until the
// user turns auto backup on, and cellular uploads are off.
func Defaults() SyncSettings {
	return SyncSettings{
		AutoBackup:     false,
		WifiOnly:       true,
		BackgroundSync: false,
	}
}

// Load reads SyncSettings from the preference store, applying defaults for
// keys that have never been written.
func Load(ctx context.Context, store prefs.Store) (SyncSettings, error) {
	s := Defaults()

	var err error
	if s.AutoBackup, err = loadBool(ctx, store, keyAutoBackup, s.AutoBackup); err != nil {
		return SyncSettings{}, err
	}
	if s.WifiOnly, err = loadBool(ctx, store, keyWifiOnly, s.WifiOnly); err != nil {
		return SyncSettings{}, err
	}
	if s.BackgroundSync, err = loadBool(ctx, store, keyBackgroundSync, s.BackgroundSync); err != nil {
		return SyncSettings{}, err
	}

	raw, err := store.Get(ctx, keySelectedAlbums)
	switch {
	case errors.Is(err, common.ErrNotFound):
		// no albums selected yet
	case err != nil:
		return SyncSettings{}, fmt.Errorf("load %s: %w", keySelectedAlbums, err)
	default:
		if err := json.Unmarshal([]byte(raw), &s.SelectedAlbumIDs); err != nil {
			return SyncSettings{}, fmt.Errorf("parse %s: %w", keySelectedAlbums, err)
		}
	}

	return s, nil
}

// Save writes the full settings snapshot back to the preference store.
func Save(ctx context.Context, store prefs.Store, s SyncSettings) error {
	if err := store.Set(ctx, keyAutoBackup, strconv.FormatBool(s.AutoBackup)); err != nil {
		return err
	}
	if err := store.Set(ctx, keyWifiOnly, strconv.FormatBool(s.WifiOnly)); err != nil {
		return err
	}
	if err := store.Set(ctx, keyBackgroundSync, strconv.FormatBool(s.BackgroundSync)); err != nil {
		return err
	}

	albums, err := json.Marshal(s.SelectedAlbumIDs)
	if err != nil {
		return err
	}
	return store.Set(ctx, keySelectedAlbums, string(albums))
}

func loadBool(ctx context.Context, store prefs.Store, key string, def bool) (bool, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}
