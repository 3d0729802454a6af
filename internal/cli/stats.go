package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show upload ledger statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	})
}

func runStats(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.repo.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("files:  %d\n", s.TotalFiles)
	fmt.Printf("images: %d\n", s.Images)
	fmt.Printf("videos: %d\n", s.Videos)
	return nil
}
