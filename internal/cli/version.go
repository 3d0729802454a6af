package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/telephoto/internal/buildinfo"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			buildinfo.PrintBuildData(os.Stdout)
		},
	})
}
