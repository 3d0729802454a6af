package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	folderCmd := &cobra.Command{
		Use:   "folder",
		Short: "Group uploaded files into named folders",
	}

	folderCmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return a.repo.CreateFolder(cmd.Context(), args[0])
		},
	})

	folderCmd.AddCommand(&cobra.Command{
		Use:   "add <asset-uri> <folder>",
		Short: "Add an uploaded file to a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return a.repo.AddToFolder(cmd.Context(), args[0], args[1])
		},
	})

	folderCmd.AddCommand(&cobra.Command{
		Use:   "ls [folder]",
		Short: "List folders, or the files in one folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 0 {
				folders, err := a.repo.Folders(cmd.Context())
				if err != nil {
					return err
				}
				for _, f := range folders {
					fmt.Println(f.Name)
				}
				return nil
			}

			files, err := a.repo.FilesInFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printRecords(files)
			return nil
		},
	})

	RootCmd.AddCommand(folderCmd)
}
