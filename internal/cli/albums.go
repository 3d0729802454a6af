package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/media"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "albums",
		Short: "List the albums found under the media roots",
		Long: "Albums are the first-level subdirectories of the media roots. Their " +
			"IDs go into the selected-albums setting to scope what sync uploads.",
		Args: cobra.NoArgs,
		RunE: runAlbums,
	})
}

func runAlbums(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if len(a.cfg.MediaRoots) == 0 {
		return fmt.Errorf("no media roots configured: %w", common.ErrNotConfigured)
	}

	albums, err := media.NewDirLibrary(a.cfg.MediaRoots...).Albums(cmd.Context())
	if err != nil {
		return err
	}
	for _, al := range albums {
		fmt.Printf("%s\t%s\n", al.ID, al.Name)
	}
	return nil
}
