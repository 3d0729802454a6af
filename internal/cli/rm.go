package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <asset-uri>",
		Short: "Remove a file from the remote store and the ledger",
		Long: "Deletes the remote object first, then the ledger record. With the " +
			"record gone the local file counts as new again and the next sync will " +
			"re-upload it unless it is deleted locally too.",
		Args: cobra.ExactArgs(1),
		RunE: runRm,
	}
	cmd.Flags().Bool("keep-remote", false, "Only drop the ledger record, leave the remote object")
	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	keepRemote, _ := cmd.Flags().GetBool("keep-remote")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.repo.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !keepRemote {
		storage, err := buildStorage(cmd.Context(), a.cfg)
		if err != nil {
			return err
		}
		if err := storage.Delete(cmd.Context(), rec.RemoteFileID); err != nil {
			return fmt.Errorf("delete remote object: %w", err)
		}
	}

	return a.repo.Remove(cmd.Context(), args[0])
}
