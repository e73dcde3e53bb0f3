package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/HISP-Uganda/fieldsync/internal/workers"
)

func (a *App) syncCmd() *cobra.Command {
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run a metadata and record sync for the active account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := a.services.Session.RestoreSessionIfNeeded(ctx); err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			var cancel func()
			if showProgress {
				bar = progressbar.NewOptions(100,
					progressbar.OptionSetDescription("syncing"),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionClearOnFinish(),
				)
				progressCh, unsubscribe := a.services.Session.Progress()
				cancel = unsubscribe
				go func() {
					for event := range progressCh {
						bar.Describe(event.Title)
						_ = bar.Set(event.OverallPercent)
					}
				}()
			}

			result, err := a.services.Session.SyncNow(ctx)
			if cancel != nil {
				cancel()
			}
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sync finished: %d succeeded, %d failed\n", result.SuccessfulCount, result.FailedCount)
			for _, failure := range result.NonCriticalFailures {
				fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s: %s\n", failure.Collection, failure.Reason)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showProgress, "progress", false, "show a progress bar")
	return cmd
}

func (a *App) daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Keep the active account's local store synced in the background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := a.services.Session.RestoreSessionIfNeeded(ctx); err != nil {
				return err
			}
			if _, err := a.services.Session.ActiveAccount(); err != nil {
				return err
			}

			background := workers.NewWorkers(a.services.ResyncJob)
			background.Run()
			defer a.services.ResyncJob.Stop()

			a.log.Info().Dur("interval", a.cfg.Workers.ResyncInterval).Msg("resync daemon started")

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-stop:
			case <-ctx.Done():
			}

			a.log.Info().Msg("resync daemon stopping")
			return nil
		},
	}
}
