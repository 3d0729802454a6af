package settings

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/telephoto/internal/logging"
	"github.com/dmitrijs2005/telephoto/internal/prefs"
)

// NetworkClass is the coarse connectivity classification used by the
// wifi-only rule.
type NetworkClass int

const (
	// NetworkUnknown means the probe could not classify the connection.
	NetworkUnknown NetworkClass = iota
	// NetworkUnmetered covers Wi-Fi-class connections.
	NetworkUnmetered
	// NetworkMetered covers cellular and other pay-per-byte links.
	NetworkMetered
)

// Prober reports the current network class. Implementations are platform
// specific; probe failures make the gate fail open.
type Prober interface {
	NetworkClass(ctx context.Context) (NetworkClass, error)
}

// StaticProber always reports a fixed class. Useful for tests and for
// platforms without a connectivity API (the gate treats NetworkUnknown as
// unmetered).
type StaticProber struct {
	Class NetworkClass
	Err   error
}

func (p StaticProber) NetworkClass(context.Context) (NetworkClass, error) {
	return p.Class, p.Err
}

// Decision is the gate's answer for one prospective sync run.
type Decision struct {
	Allowed bool
	// Reason explains a denial; empty when Allowed.
	Reason string
	// AlbumIDs is the album scope for enumeration; empty means all albums.
	AlbumIDs []string
}

// Gate evaluates the sync preferences and current connectivity to decide
// whether a run is permitted and with what album scope.
type Gate struct {
	store prefs.Store
	probe Prober
	log   logging.Logger
}

func NewGate(store prefs.Store, probe Prober, log logging.Logger) *Gate {
	return &Gate{store: store, probe: probe, log: log}
}

// Evaluate applies the gating rules in order. Background runs require both
// AutoBackup and BackgroundSync; a manual run is explicit user intent and
// skips those two checks. The wifi-only rule applies to both; if the
// network probe itself fails, the gate fails open rather than blocking sync
// indefinitely.
func (g *Gate) Evaluate(ctx context.Context, background bool) (Decision, error) {
	s, err := Load(ctx, g.store)
	if err != nil {
		return Decision{}, fmt.Errorf("settings: %w", err)
	}

	if background && !s.AutoBackup {
		return Decision{Reason: "auto backup disabled"}, nil
	}
	if background && !s.BackgroundSync {
		return Decision{Reason: "background sync disabled"}, nil
	}

	if s.WifiOnly {
		class, err := g.probe.NetworkClass(ctx)
		if err != nil {
			g.log.Warn(ctx, "network probe unavailable, proceeding", "error", err)
		} else if class == NetworkMetered {
			return Decision{Reason: "wifi-only enabled and not on an unmetered connection"}, nil
		}
	}

	return Decision{Allowed: true, AlbumIDs: s.SelectedAlbumIDs}, nil
}
