package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/telephoto/internal/logging"
	"github.com/dmitrijs2005/telephoto/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newStore(t *testing.T, s SyncSettings) prefs.Store {
	t.Helper()
	store, err := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)
	require.NoError(t, Save(context.Background(), store, s))
	return store
}

func TestGate_BackgroundDeniedWhenAutoBackupOff(t *testing.T) {
	store := newStore(t, SyncSettings{AutoBackup: false, BackgroundSync: true})
	g := NewGate(store, StaticProber{Class: NetworkUnmetered}, testLogger())

	d, err := g.Evaluate(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, "auto backup disabled", d.Reason)
}

func TestGate_BackgroundDeniedWhenBackgroundSyncOff(t *testing.T) {
	store := newStore(t, SyncSettings{AutoBackup: true, BackgroundSync: false})
	g := NewGate(store, StaticProber{Class: NetworkUnmetered}, testLogger())

	d, err := g.Evaluate(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, "background sync disabled", d.Reason)
}

func TestGate_BackgroundDenialIgnoresNetworkState(t *testing.T) {
	// Denied by settings even though the network would allow it.
	store := newStore(t, SyncSettings{AutoBackup: false, BackgroundSync: false, WifiOnly: true})
	g := NewGate(store, StaticProber{Class: NetworkUnmetered}, testLogger())

	d, err := g.Evaluate(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestGate_ManualRunSkipsBackupToggles(t *testing.T) {
	store := newStore(t, SyncSettings{AutoBackup: false, BackgroundSync: false})
	g := NewGate(store, StaticProber{Class: NetworkUnmetered}, testLogger())

	d, err := g.Evaluate(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestGate_WifiOnlyDeniesOnMetered(t *testing.T) {
	store := newStore(t, SyncSettings{AutoBackup: true, BackgroundSync: true, WifiOnly: true})
	g := NewGate(store, StaticProber{Class: NetworkMetered}, testLogger())

	d, err := g.Evaluate(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)
}

func TestGate_WifiOnlyFailsOpenWhenProbeErrors(t *testing.T) {
	store := newStore(t, SyncSettings{AutoBackup: true, BackgroundSync: true, WifiOnly: true})
	g := NewGate(store, StaticProber{Err: errors.New("no connectivity api")}, testLogger())

	d, err := g.Evaluate(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestGate_ReturnsAlbumScope(t *testing.T) {
	store := newStore(t, SyncSettings{
		AutoBackup:       true,
		BackgroundSync:   true,
		SelectedAlbumIDs: []string{"camera", "screenshots"},
	})
	g := NewGate(store, StaticProber{Class: NetworkUnmetered}, testLogger())

	d, err := g.Evaluate(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, []string{"camera", "screenshots"}, d.AlbumIDs)
}
