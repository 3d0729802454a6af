// Package cli implements the telephoto CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "telephoto",
	Short: "Back up local media to a remote chat or object store",
	Long: "telephoto scans media directories, uploads new photos and videos to " +
		"Telegram (or an S3-compatible store) and keeps a local ledger so nothing " +
		"is uploaded twice.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// These are parsed by the config loader straight from os.Args (short
	// forms only); they are declared here so cobra accepts them.
	RootCmd.PersistentFlags().StringP("config", "c", "", "Path to JSON config file")
	RootCmd.PersistentFlags().StringP("database", "d", "", "Path to the upload ledger database")
	RootCmd.PersistentFlags().StringP("media", "m", "", "Comma-separated media root directories")
	RootCmd.PersistentFlags().StringP("storage", "s", "", "Storage backend: telegram or s3")
	RootCmd.PersistentFlags().IntP("workers", "w", 0, "Upload worker count")
	RootCmd.PersistentFlags().IntP("interval", "i", 0, "Background sync interval in seconds")
	RootCmd.PersistentFlags().StringP("level", "l", "", "Log level: debug, info, warn or error")
}

// Execute runs the CLI.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
