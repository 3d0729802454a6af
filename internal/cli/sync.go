package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/telephoto/internal/pipeline"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass now",
		Long: "Scans the media roots and uploads everything the ledger does not know " +
			"about yet. Honors the wifi-only setting; the auto-backup and background " +
			"toggles only gate background runs.",
		Args: cobra.NoArgs,
		RunE: runSync,
	})
}

func runSync(cmd *cobra.Command, _ []string) error {
	a, err := openSyncApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	count, err := a.orchestrator.Run(cmd.Context(), false)
	if err != nil {
		return err
	}
	fmt.Printf("uploaded %d file(s)\n", count)

	for _, v := range a.orchestrator.Items() {
		if v.Status == pipeline.StatusFailed {
			fmt.Printf("failed: %s (%v)\n", v.AssetURI, v.Err)
		}
	}
	return nil
}
