package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/telephoto/internal/models"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List uploaded files, newest first",
		Args:  cobra.NoArgs,
		RunE:  runLs,
	}
	cmd.Flags().StringP("kind", "k", "", "Filter by media kind: image or video")
	RootCmd.AddCommand(cmd)
}

func runLs(cmd *cobra.Command, _ []string) error {
	kind, _ := cmd.Flags().GetString("kind")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.repo.ListUploaded(cmd.Context(), models.MediaKind(kind))
	if err != nil {
		return err
	}
	printRecords(records)
	return nil
}

func printRecords(records []models.UploadRecord) {
	for _, r := range records {
		fmt.Printf("%s  %-5s  %-30s  %s\n",
			r.UploadedAt.Local().Format(time.DateTime), r.Kind, r.DisplayName, r.AssetURI)
	}
}
