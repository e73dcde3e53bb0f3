package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) logoutCmd() *cobra.Command {
	var secure bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session, keeping local data for the next login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if secure {
				err = a.services.Session.SecureLogout(cmd.Context())
			} else {
				err = a.services.Session.Logout(cmd.Context())
			}
			if err != nil {
				return err
			}

			if secure {
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out; stored credentials wiped")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&secure, "secure", false, "also wipe the stored credentials, disabling offline login")
	return cmd
}

func (a *App) wipeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Remove every account, credential and local store from this machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				fmt.Fprint(cmd.ErrOrStderr(), "This deletes ALL local data for ALL accounts. Type 'yes' to continue: ")
				var answer string
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil || answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			if err := a.services.Session.WipeAllData(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All local data removed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}
