package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search uploaded images by recognized text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.repo.SearchByText(cmd.Context(), query)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no matches")
		return nil
	}
	printRecords(records)
	return nil
}
