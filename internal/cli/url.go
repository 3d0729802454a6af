package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "url <asset-uri>",
		Short: "Print a download URL for an uploaded file",
		Args:  cobra.ExactArgs(1),
		RunE:  runURL,
	})
}

func runURL(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.repo.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	storage, err := buildStorage(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}

	url, err := storage.ResolveDownloadURL(cmd.Context(), rec.RemoteFileID)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}
