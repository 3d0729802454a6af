package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/telephoto/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the upload ledger database
//	-m string   comma-separated media root directories
//	-s string   storage backend, "telegram" or "s3"
//	-w int      upload worker count
//	-i int      background sync interval in seconds
//	-l string   log level: debug, info, warn, error
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with flags owned by other
// components (cobra in particular).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-m", "-s", "-w", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the upload ledger database")
	roots := fs.String("m", strings.Join(cfg.MediaRoots, ","), "comma-separated media root directories")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend: telegram or s3")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "upload worker count")
	interval := fs.Int("i", int(cfg.SyncInterval.Seconds()), "background sync interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *roots != "" {
		cfg.MediaRoots = strings.Split(*roots, ",")
	}
	cfg.SyncInterval = time.Duration(*interval) * time.Second
}
