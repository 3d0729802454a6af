// Package config loads runtime configuration for the telephoto CLI and
// watch daemon.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Credentials for the remote store (bot token, S3 keys) are only read from
// the JSON file, never from flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/telephoto/internal/background"
	"github.com/dmitrijs2005/telephoto/internal/filex"
	"github.com/dmitrijs2005/telephoto/internal/media"
	"github.com/dmitrijs2005/telephoto/internal/pipeline"
)

// Storage backend selectors.
const (
	BackendTelegram = "telegram"
	BackendS3       = "s3"
)

// Config holds runtime settings for the telephoto binaries.
type Config struct {
	// DatabasePath is the location of the upload ledger.
	DatabasePath string
	// PrefsPath is the location of the sync preferences file.
	PrefsPath string
	// MediaRoots are the directories scanned for media assets.
	MediaRoots []string

	// StorageBackend selects the remote store: "telegram" or "s3".
	StorageBackend string

	TelegramToken  string
	TelegramChatID string
	// TelegramAPIURL overrides the Bot API base URL, mainly for tests.
	TelegramAPIURL string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	ImagePageSize int
	VideoPageSize int
	AlbumPageSize int

	Workers    int
	MaxRetries int

	SyncInterval  time.Duration
	WatchDebounce time.Duration

	// NetworkClass tells the wifi-only gate how to classify this host's
	// connection: "unmetered", "metered" or "unknown".
	NetworkClass string

	// OCRCommand, when set, names the text-recognition binary ("tesseract").
	OCRCommand string

	LogLevel string
	LogFile  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = filex.DefaultDataPath("telephoto.db")
	c.PrefsPath = filex.DefaultDataPath("prefs.json")
	c.MediaRoots = nil

	c.StorageBackend = BackendTelegram

	c.ImagePageSize = media.DefaultImagePageSize
	c.VideoPageSize = media.DefaultVideoPageSize
	c.AlbumPageSize = media.DefaultAlbumPageSize

	c.Workers = pipeline.DefaultWorkers
	c.MaxRetries = pipeline.DefaultMaxRetries

	c.SyncInterval = background.DefaultInterval
	c.WatchDebounce = background.DefaultDebounce

	c.NetworkClass = "unknown"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
