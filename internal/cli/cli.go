// Package cli wires the client services into the fieldsync command tree.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HISP-Uganda/fieldsync/internal/adapter"
	"github.com/HISP-Uganda/fieldsync/internal/config"
	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/service"
	"github.com/HISP-Uganda/fieldsync/internal/store"
)

// App carries the wired service graph between the root command's setup and
// the subcommands.
type App struct {
	log     *logger.Logger
	cfgFile string

	cfg      config.ClientConfig
	session  *adapter.SessionClient
	stores   *store.Manager
	services *service.Services
}

// NewRootCmd builds the fieldsync command tree. The service graph is wired
// in PersistentPreRunE so the --config flag is honored.
func NewRootCmd(log *logger.Logger, version string) *cobra.Command {
	app := &App{log: log}

	root := &cobra.Command{
		Use:           "fieldsync",
		Short:         "Offline-capable sync client for field data collection",
		Long:          `fieldsync keeps per-account local stores of a data-collection server's metadata and records, and can sign users in from those stores when the server is unreachable.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup()
		},
	}
	root.PersistentFlags().StringVarP(&app.cfgFile, "config", "c", "", "JSON config file path")

	root.AddCommand(
		app.loginCmd(),
		app.offlineLoginCmd(),
		app.logoutCmd(),
		app.syncCmd(),
		app.daemonCmd(),
		app.statusCmd(),
		app.accountsCmd(),
		app.wipeCmd(),
	)
	return root
}

func (a *App) setup() error {
	cfg, err := config.GetClientConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	session := adapter.NewSessionClient(adapter.EngineConfig{
		BaseURL:        cfg.Remote.BaseURL,
		ConnectTimeout: cfg.Remote.ConnectTimeout,
		ReadTimeout:    cfg.Remote.ReadTimeout,
		WriteTimeout:   cfg.Remote.WriteTimeout,
		CacheDir:       filepath.Join(cfg.Storage.Dir, "cache"),
	}, a.log)

	stores := store.NewManager(cfg.Storage, a.log)

	services, err := service.NewServices(session, stores, *cfg, a.log)
	if err != nil {
		return fmt.Errorf("wire client services: %w", err)
	}

	a.cfg = *cfg
	a.session = session
	a.stores = stores
	a.services = services
	return nil
}
