package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HISP-Uganda/fieldsync/internal/adapter"
	"github.com/HISP-Uganda/fieldsync/internal/service"
)

func (a *App) loginCmd() *cobra.Command {
	var (
		username     string
		serverURL    string
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and run the initial sync",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}

			server := serverURL
			if server == "" {
				server = a.cfg.Remote.BaseURL
			}

			ctx := cmd.Context()
			report := service.ProgressFunc(nil)

			var bar *progressbar.ProgressBar
			if showProgress {
				bar = progressbar.NewOptions(100,
					progressbar.OptionSetDescription("signing in"),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				report = func(percent int, detail string) {
					if detail != "" {
						bar.Describe(detail)
					}
					_ = bar.Set(percent)
				}
			}

			account, err := a.services.Session.LoginWithProgress(ctx, username, password, server, report)
			if errors.Is(err, adapter.ErrUnreachableHost) {
				a.log.Warn().Err(err).Msg("server unreachable, trying offline login")
				account, err = a.services.Session.AttemptOfflineLogin(ctx, username, password, server)
				if err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Signed in offline as %s (local data only)\n", account.DisplayName)
					return nil
				}
			}
			if err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Finish()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", account.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&serverURL, "server", "s", "", "server URL (defaults to the configured one)")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "show a progress bar during the initial sync")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func (a *App) offlineLoginCmd() *cobra.Command {
	var (
		username  string
		serverURL string
	)

	cmd := &cobra.Command{
		Use:   "offline-login",
		Short: "Sign in against the stored credentials without contacting the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}

			server := serverURL
			if server == "" {
				server = a.cfg.Remote.BaseURL
			}

			account, err := a.services.Session.AttemptOfflineLogin(cmd.Context(), username, password, server)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in offline as %s (local data only)\n", account.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&serverURL, "server", "s", "", "server URL (defaults to the configured one)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// promptPassword reads the password without echo when stdin is a terminal,
// and falls back to a plain line read otherwise (pipes, scripts).
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
