package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/telephoto/internal/background"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Run the background sync daemon",
		Long: "Keeps syncing until interrupted: a periodic trigger fires on the " +
			"configured interval and a filesystem watcher fires shortly after new " +
			"media appears. Both respect the auto-backup and background-sync settings.",
		Args: cobra.NoArgs,
		RunE: runWatch,
	})
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openSyncApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	scheduler := background.NewScheduler(a.orchestrator, a.cfg.SyncInterval, a.log)
	watcher := background.NewWatcher(a.cfg.MediaRoots, a.cfg.WatchDebounce, func(ctx context.Context) {
		scheduler.RunOnce(ctx)
	}, a.log)

	// Catch up on whatever appeared while the daemon was down.
	scheduler.RunOnce(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return scheduler.Run(ctx) })
	g.Go(func() error { return watcher.Run(ctx) })
	return g.Wait()
}
