package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/config"
	"github.com/dmitrijs2005/telephoto/internal/ledger"
	"github.com/dmitrijs2005/telephoto/internal/logging"
	"github.com/dmitrijs2005/telephoto/internal/media"
	"github.com/dmitrijs2005/telephoto/internal/ocr"
	"github.com/dmitrijs2005/telephoto/internal/pipeline"
	"github.com/dmitrijs2005/telephoto/internal/prefs"
	"github.com/dmitrijs2005/telephoto/internal/remote"
	"github.com/dmitrijs2005/telephoto/internal/settings"
	"github.com/dmitrijs2005/telephoto/internal/syncer"
)

// app bundles the wired components a command needs. Commands build only
// what they use: ledger-only commands call openApp, sync-capable ones
// call openSyncApp.
type app struct {
	cfg   *config.Config
	log   logging.Logger
	db    *sql.DB
	repo  *ledger.SQLiteRepository
	prefs *prefs.FileStore
}

type syncApp struct {
	*app
	storage      remote.Storage
	orchestrator *syncer.Orchestrator
}

func openApp(ctx context.Context) (*app, error) {
	cfg := config.LoadConfig()
	log := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	db, err := ledger.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	store, err := prefs.NewFileStore(cfg.PrefsPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &app{
		cfg:   cfg,
		log:   log,
		db:    db,
		repo:  ledger.NewSQLiteRepository(db),
		prefs: store,
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

func openSyncApp(ctx context.Context) (*syncApp, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, err
	}

	storage, err := buildStorage(ctx, a.cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	if len(a.cfg.MediaRoots) == 0 {
		a.Close()
		return nil, fmt.Errorf("no media roots configured (use -m or media_roots in the config file): %w", common.ErrNotConfigured)
	}

	lib := media.NewDirLibrary(a.cfg.MediaRoots...)
	enum := media.NewEnumerator(lib, media.PageSizes{
		Images:   a.cfg.ImagePageSize,
		Videos:   a.cfg.VideoPageSize,
		PerAlbum: a.cfg.AlbumPageSize,
	}, a.log)

	gate := settings.NewGate(a.prefs, proberFor(a.cfg.NetworkClass), a.log)

	p := pipeline.New(storage, a.repo, buildRecognizer(ctx, a.cfg, a.log), a.log, pipeline.Config{
		Workers:    a.cfg.Workers,
		MaxRetries: a.cfg.MaxRetries,
	})

	return &syncApp{
		app:          a,
		storage:      storage,
		orchestrator: syncer.New(gate, enum, a.repo, p, a.log),
	}, nil
}

func buildStorage(ctx context.Context, cfg *config.Config) (remote.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendTelegram:
		return remote.NewTelegram(remote.TelegramConfig{
			Token:   cfg.TelegramToken,
			ChatID:  cfg.TelegramChatID,
			BaseURL: cfg.TelegramAPIURL,
		})
	case config.BackendS3:
		return remote.NewS3Storage(ctx, remote.S3Config{
			RootUser:     cfg.S3AccessKeyID,
			RootPassword: cfg.S3SecretAccessKey,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q: %w", cfg.StorageBackend, common.ErrNotConfigured)
	}
}

func buildRecognizer(ctx context.Context, cfg *config.Config, log logging.Logger) ocr.Recognizer {
	if cfg.OCRCommand == "" {
		return ocr.Disabled{}
	}
	rec, err := ocr.NewTesseract(cfg.OCRCommand)
	if err != nil {
		log.Warn(ctx, "text recognition unavailable", "error", err)
		return ocr.Disabled{}
	}
	return rec
}

func proberFor(class string) settings.Prober {
	switch class {
	case "metered":
		return settings.StaticProber{Class: settings.NetworkMetered}
	case "unmetered":
		return settings.StaticProber{Class: settings.NetworkUnmetered}
	default:
		return settings.StaticProber{Class: settings.NetworkUnknown}
	}
}
