package service

import (
	"fmt"

	"github.com/HISP-Uganda/fieldsync/internal/adapter"
	"github.com/HISP-Uganda/fieldsync/internal/config"
	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/store"
)

const (
	vaultNamespace    = "vault"
	accountsNamespace = "accounts"
)

type Services struct {
	Accounts     AccountRegistry
	Vault        CredentialVault
	MetadataSync MetadataSyncEngine
	RecordSync   BackgroundSyncCoordinator
	Session      SessionOrchestrator
	ResyncJob    ResyncJob
}

// NewServices wires the full client service graph on top of the shared
// session client and the per-account store manager.
func NewServices(session *adapter.SessionClient, stores *store.Manager, cfg config.ClientConfig, logger *logger.Logger) (*Services, error) {
	vaultPrefs, err := store.NewPrefs(cfg.Storage.Dir, vaultNamespace)
	if err != nil {
		return nil, fmt.Errorf("open vault namespace: %w", err)
	}
	accountPrefs, err := store.NewPrefs(cfg.Storage.Dir, accountsNamespace)
	if err != nil {
		return nil, fmt.Errorf("open accounts namespace: %w", err)
	}

	registry := NewAccountRegistry(accountPrefs, logger)
	vault := NewCredentialVault(vaultPrefs, logger)
	metaSync := NewMetadataSyncEngine(session, logger)
	bgSync := NewBackgroundSyncCoordinator(session, logger)
	orchestrator := NewSessionOrchestrator(session, registry, vault, stores, metaSync, bgSync, cfg.Storage.Dir, logger)

	return &Services{
		Accounts:     registry,
		Vault:        vault,
		MetadataSync: metaSync,
		RecordSync:   bgSync,
		Session:      orchestrator,
		ResyncJob:    NewResyncJob(orchestrator, cfg.Workers.ResyncInterval, logger),
	}, nil
}
