package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/telephoto/internal/settings"
)

func init() {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the sync preferences",
	}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current sync preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := settings.Load(cmd.Context(), a.prefs)
			if err != nil {
				return err
			}
			fmt.Printf("auto-backup:     %v\n", s.AutoBackup)
			fmt.Printf("wifi-only:       %v\n", s.WifiOnly)
			fmt.Printf("background-sync: %v\n", s.BackgroundSync)
			if len(s.SelectedAlbumIDs) == 0 {
				fmt.Printf("albums:          all\n")
			} else {
				fmt.Printf("albums:          %s\n", strings.Join(s.SelectedAlbumIDs, ","))
			}
			return nil
		},
	})

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one sync preference",
		Long: "Keys: auto-backup, wifi-only, background-sync (true/false) and " +
			"albums (comma-separated album IDs, or \"all\" to clear the scope).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := settings.Load(cmd.Context(), a.prefs)
			if err != nil {
				return err
			}
			if err := applySetting(&s, args[0], args[1]); err != nil {
				return err
			}
			return settings.Save(cmd.Context(), a.prefs, s)
		},
	})

	RootCmd.AddCommand(settingsCmd)
}

func applySetting(s *settings.SyncSettings, key, value string) error {
	switch key {
	case "auto-backup", "wifi-only", "background-sync":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("value for %s must be true or false: %w", key, err)
		}
		switch key {
		case "auto-backup":
			s.AutoBackup = b
		case "wifi-only":
			s.WifiOnly = b
		case "background-sync":
			s.BackgroundSync = b
		}
	case "albums":
		if value == "all" || value == "" {
			s.SelectedAlbumIDs = nil
		} else {
			s.SelectedAlbumIDs = strings.Split(value, ",")
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
