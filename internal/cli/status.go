package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HISP-Uganda/fieldsync/internal/service"
)

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active account and its local data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			account, err := a.services.Session.ActiveAccount()
			if errors.Is(err, service.ErrNoActiveAccount) {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Account:  %s (%s)\n", account.DisplayName, account.Username)
			fmt.Fprintf(out, "Server:   %s\n", account.ServerURL)
			fmt.Fprintf(out, "Store:    %s\n", account.LocalStoreName)
			if a.services.Vault.OfflineMode() {
				fmt.Fprintln(out, "Mode:     offline (local data only)")
			} else {
				fmt.Fprintln(out, "Mode:     online")
			}

			st, err := a.stores.GetStoreForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			orgUnits, err := st.Metadata().CountOrgUnits(ctx)
			if err != nil {
				return err
			}
			programs, err := st.Metadata().CountPrograms(ctx)
			if err != nil {
				return err
			}
			dataSets, err := st.Metadata().CountDataSets(ctx)
			if err != nil {
				return err
			}
			dataValues, err := st.Records().CountDataValues(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Local data: %d org units, %d programs, %d data sets, %d data values\n",
				orgUnits, programs, dataSets, dataValues)
			return nil
		},
	}
}

func (a *App) accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List every account known to this installation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := a.services.Accounts.Accounts()
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts registered")
				return nil
			}

			active, _ := a.services.Accounts.ActiveAccount()
			for _, account := range accounts {
				marker := " "
				if account.ID == active.ID {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  (%s)\n", marker, account.Username, account.ServerURL, account.LocalStoreName)
			}
			return nil
		},
	}
}
