package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/HISP-Uganda/fieldsync/internal/adapter"
	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/store"
	"github.com/HISP-Uganda/fieldsync/models"
)

// sessionOrchestrator sequences the shared session client, the account
// registry, the credential vault, the store manager and the sync engines
// into the user-facing login, logout and wipe flows.
//
// A single mutex serializes the mutating flows. Two logins issued at the
// same time therefore run one after the other against the single remote
// session instead of interleaving.
type sessionOrchestrator struct {
	session    *adapter.SessionClient
	registry   AccountRegistry
	vault      CredentialVault
	stores     *store.Manager
	metaSync   MetadataSyncEngine
	bgSync     BackgroundSyncCoordinator
	storageDir string
	logger     *logger.Logger

	loginMu sync.Mutex

	progress *Observable[models.ProgressEvent]
	accounts *Observable[models.Account]
}

func NewSessionOrchestrator(
	session *adapter.SessionClient,
	registry AccountRegistry,
	vault CredentialVault,
	stores *store.Manager,
	metaSync MetadataSyncEngine,
	bgSync BackgroundSyncCoordinator,
	storageDir string,
	logger *logger.Logger,
) SessionOrchestrator {
	logger.Debug().Msg("creating session orchestrator")
	return &sessionOrchestrator{
		session:    session,
		registry:   registry,
		vault:      vault,
		stores:     stores,
		metaSync:   metaSync,
		bgSync:     bgSync,
		storageDir: storageDir,
		logger:     logger,
		progress:   NewObservable[models.ProgressEvent](),
		accounts:   NewObservable[models.Account](),
	}
}

func (o *sessionOrchestrator) Login(ctx context.Context, username, password, serverURL string) (models.Account, error) {
	return o.LoginWithProgress(ctx, username, password, serverURL, nil)
}

func (o *sessionOrchestrator) LoginWithProgress(ctx context.Context, username, password, serverURL string, report ProgressFunc) (models.Account, error) {
	o.loginMu.Lock()
	defer o.loginMu.Unlock()

	runID := uuid.NewString()
	emit := o.emitter(runID, report)

	emit(models.PhaseAuthenticating, 0, "signing in", "")
	displayName, err := o.session.Login(ctx, username, password, serverURL)
	if err != nil {
		return models.Account{}, err
	}
	emit(models.PhaseAuthenticating, 20, "signing in", "authenticated")

	if err = o.vault.Save(ctx, username, password, serverURL); err != nil {
		o.logger.Warn().Err(err).Msg("storing credentials for offline login failed")
	}
	if err = o.vault.SetOfflineMode(false); err != nil {
		o.logger.Warn().Err(err).Msg("clearing offline mode marker failed")
	}

	account, err := o.registry.UpsertAccount(ctx, username, serverURL, displayName)
	if err != nil {
		return models.Account{}, fmt.Errorf("register account: %w", err)
	}
	if err = o.registry.SetActiveAccount(account.ID); err != nil {
		return models.Account{}, fmt.Errorf("activate account: %w", err)
	}

	st, err := o.stores.GetStoreForAccount(ctx, account)
	if err != nil {
		return models.Account{}, err
	}

	emit(models.PhaseMetadata, metadataProgressFloor, "syncing metadata", "")
	nonCritical, err := o.metaSync.Sync(ctx, st, func(percent int, detail string) {
		emit(models.PhaseMetadata, percent, "syncing metadata", detail)
	})
	if err != nil {
		// Without reference data the session is unusable. Roll the login
		// back so the client is not left half signed in; the credentials
		// saved above go too, a login that never completed must not enable
		// offline login later.
		if logoutErr := o.session.Logout(ctx); logoutErr != nil {
			o.logger.Warn().Err(logoutErr).Msg("rollback logout failed")
		}
		if clearErr := o.vault.Clear(); clearErr != nil {
			o.logger.Warn().Err(clearErr).Msg("rollback of stored credentials failed")
		}
		if clearErr := o.registry.ClearActiveAccount(); clearErr != nil {
			o.logger.Warn().Err(clearErr).Msg("rollback of active account failed")
		}
		return models.Account{}, err
	}
	for _, failure := range nonCritical {
		o.logger.Warn().
			Str("collection", failure.Collection).
			Str("reason", failure.Reason).
			Msg("metadata sync completed with warning")
	}

	o.accounts.Publish(account)

	// Record-level data downloads after login returns; the session is
	// usable as soon as metadata is in place.
	go o.bgSync.RunFullSync(context.WithoutCancel(ctx), st, func(percent int, detail string) {
		emit(models.PhaseTrackerData, percent, "syncing records", detail)
	}, func(result models.SyncResult) {
		o.logger.Info().
			Int("succeeded", result.SuccessfulCount).
			Int("failed", result.FailedCount).
			Msg("post-login record sync finished")
		emit(models.PhaseReady, 100, "ready", "")
	})

	return account, nil
}

func (o *sessionOrchestrator) AttemptOfflineLogin(ctx context.Context, username, password, serverURL string) (models.Account, error) {
	o.loginMu.Lock()
	defer o.loginMu.Unlock()

	if err := o.vault.Validate(ctx, username, password, serverURL); err != nil {
		return models.Account{}, err
	}

	account, err := o.registry.Account(DeriveAccountID(username, serverURL))
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			return models.Account{}, err
		}
		// Vault matched but the registration is gone. Rebuild it from the
		// vault so the user regains access to their local store.
		if account, err = o.registry.UpsertAccount(ctx, username, serverURL, ""); err != nil {
			return models.Account{}, fmt.Errorf("re-register account: %w", err)
		}
	}

	if err = o.registry.SetActiveAccount(account.ID); err != nil {
		return models.Account{}, fmt.Errorf("activate account: %w", err)
	}
	if _, err = o.stores.GetStoreForAccount(ctx, account); err != nil {
		return models.Account{}, err
	}
	if err = o.vault.SetOfflineMode(true); err != nil {
		o.logger.Warn().Err(err).Msg("setting offline mode marker failed")
	}

	o.logger.Info().Str("account", account.ID).Msg("offline login accepted")
	o.accounts.Publish(account)
	return account, nil
}

func (o *sessionOrchestrator) RestoreSessionIfNeeded(ctx context.Context) error {
	account, err := o.registry.ActiveAccount()
	if err != nil {
		if errors.Is(err, ErrNoActiveAccount) {
			return nil
		}
		return err
	}

	if err = o.session.Initialize(ctx); err != nil {
		return err
	}
	st, err := o.stores.GetStoreForAccount(ctx, account)
	if err != nil {
		return err
	}

	// A still-authenticated session resuming onto an empty store means the
	// initial download never landed; refill it without blocking the resume.
	if o.session.IsSessionActive() && o.referenceDataMissing(ctx, st) {
		o.logger.Info().Str("account", account.ID).Msg("reference collections empty on resume, rehydrating")
		go o.rehydrate(context.WithoutCancel(ctx), st, o.emitter(uuid.NewString(), nil))
	}

	o.logger.Debug().Str("account", account.ID).Msg("session state restored")
	o.accounts.Publish(account)
	return nil
}

// referenceDataMissing reports whether all three reference collections of
// the store are empty. Probe errors count as data present so a flaky read
// never triggers a redundant full download.
func (o *sessionOrchestrator) referenceDataMissing(ctx context.Context, st store.Store) bool {
	repo := st.Metadata()
	for _, count := range []func(context.Context) (int64, error){
		repo.CountOrgUnits, repo.CountPrograms, repo.CountDataSets,
	} {
		n, err := count(ctx)
		if err != nil {
			o.logger.Warn().Err(err).Msg("probing reference collections failed")
			return false
		}
		if n > 0 {
			return false
		}
	}
	return true
}

func (o *sessionOrchestrator) rehydrate(ctx context.Context, st store.Store, emit func(models.SyncPhase, int, string, string)) {
	if _, err := o.metaSync.Sync(ctx, st, func(percent int, detail string) {
		emit(models.PhaseMetadata, percent, "syncing metadata", detail)
	}); err != nil {
		o.logger.Warn().Err(err).Msg("resume rehydration failed")
		return
	}
	o.bgSync.RunFullSync(ctx, st, func(percent int, detail string) {
		emit(models.PhaseTrackerData, percent, "syncing records", detail)
	}, func(models.SyncResult) {
		emit(models.PhaseReady, 100, "ready", "")
	})
}

// Logout deactivates the account and ends the remote session. Each step
// runs even when an earlier one failed; the combined error is returned.
func (o *sessionOrchestrator) Logout(ctx context.Context) error {
	o.loginMu.Lock()
	defer o.loginMu.Unlock()
	return o.logoutLocked(ctx)
}

func (o *sessionOrchestrator) logoutLocked(ctx context.Context) error {
	var errs []error

	if err := o.session.Logout(ctx); err != nil {
		errs = append(errs, fmt.Errorf("remote logout: %w", err))
	}
	if err := o.stores.CloseCurrentStore(); err != nil {
		errs = append(errs, err)
	}
	if err := o.registry.ClearActiveAccount(); err != nil {
		errs = append(errs, fmt.Errorf("clear active account: %w", err))
	}
	if err := o.vault.SetOfflineMode(false); err != nil {
		errs = append(errs, fmt.Errorf("clear offline mode: %w", err))
	}

	// Observers reset their cached view on the zero account.
	o.accounts.Publish(models.Account{})

	return errors.Join(errs...)
}

func (o *sessionOrchestrator) SecureLogout(ctx context.Context) error {
	o.loginMu.Lock()
	defer o.loginMu.Unlock()

	errs := []error{o.logoutLocked(ctx)}
	if err := o.vault.Clear(); err != nil {
		errs = append(errs, fmt.Errorf("clear credential vault: %w", err))
	}
	return errors.Join(errs...)
}

// WipeAllData removes every trace of every account. Steps run in a fixed
// order and continue past failures, then a verification pass re-runs any
// step whose effect is still observable.
func (o *sessionOrchestrator) WipeAllData(ctx context.Context) error {
	o.loginMu.Lock()
	defer o.loginMu.Unlock()

	var errs []error

	// The local store goes first, synchronously: observers reacting to the
	// account change must never see stale cached rows.
	if err := o.stores.ClearCurrent(ctx); err != nil && !errors.Is(err, store.ErrNoOpenStore) {
		errs = append(errs, fmt.Errorf("clear open store: %w", err))
	}
	if err := o.stores.CloseCurrentStore(); err != nil {
		errs = append(errs, err)
	}
	if err := o.removeStoreFiles(); err != nil {
		errs = append(errs, err)
	}
	if err := o.vault.Clear(); err != nil {
		errs = append(errs, fmt.Errorf("clear credential vault: %w", err))
	}
	if err := o.session.Logout(ctx); err != nil {
		errs = append(errs, fmt.Errorf("remote logout: %w", err))
	}
	if engine := o.session.Engine(); engine != nil {
		if err := engine.WipeLocal(ctx); err != nil {
			// The engine may refuse to wipe while unauthenticated; its cache
			// files are removed directly instead.
			if removeErr := os.RemoveAll(engine.CacheDir()); removeErr != nil {
				errs = append(errs, fmt.Errorf("wipe engine cache: %w", errors.Join(err, removeErr)))
			}
		}
	}
	if err := o.registry.RemoveAll(); err != nil {
		errs = append(errs, fmt.Errorf("clear account registry: %w", err))
	}
	o.session.Drop()
	o.accounts.Publish(models.Account{})

	errs = append(errs, o.verifyWipe())

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("wipe incomplete: %w", err)
	}
	o.logger.Info().Msg("all local data wiped")
	return nil
}

// verifyWipe re-checks each wipe target and repairs what the first pass
// missed.
func (o *sessionOrchestrator) verifyWipe() error {
	var errs []error

	if _, err := o.vault.Stored(); err == nil {
		o.logger.Warn().Msg("vault survived wipe, clearing again")
		if err = o.vault.Clear(); err != nil {
			errs = append(errs, fmt.Errorf("repair vault wipe: %w", err))
		}
	}

	if accounts, err := o.registry.Accounts(); err == nil && len(accounts) > 0 {
		o.logger.Warn().Int("accounts", len(accounts)).Msg("registrations survived wipe, clearing again")
		if err = o.registry.RemoveAll(); err != nil {
			errs = append(errs, fmt.Errorf("repair registry wipe: %w", err))
		}
	}

	if err := o.removeStoreFiles(); err != nil {
		errs = append(errs, fmt.Errorf("repair store file wipe: %w", err))
	}

	return errors.Join(errs...)
}

func (o *sessionOrchestrator) removeStoreFiles() error {
	if o.storageDir == "" {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(o.storageDir, "account_*.db"))
	if err != nil {
		return fmt.Errorf("list account store files: %w", err)
	}

	var errs []error
	for _, path := range matches {
		if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove %s: %w", filepath.Base(path), err))
		}
	}
	return errors.Join(errs...)
}

func (o *sessionOrchestrator) ActiveAccount() (models.Account, error) {
	return o.registry.ActiveAccount()
}

func (o *sessionOrchestrator) SyncNow(ctx context.Context) (models.SyncResult, error) {
	o.loginMu.Lock()
	defer o.loginMu.Unlock()

	account, err := o.registry.ActiveAccount()
	if err != nil {
		return models.SyncResult{}, err
	}
	st, err := o.stores.GetStoreForAccount(ctx, account)
	if err != nil {
		return models.SyncResult{}, err
	}

	runID := uuid.NewString()
	emit := o.emitter(runID, nil)

	var result models.SyncResult

	emit(models.PhaseMetadata, metadataProgressFloor, "syncing metadata", "")
	nonCritical, err := o.metaSync.Sync(ctx, st, func(percent int, detail string) {
		emit(models.PhaseMetadata, percent, "syncing metadata", detail)
	})
	if err != nil {
		result.FailedCount++
		result.CriticalFailures = append(result.CriticalFailures, models.SyncFailure{
			Collection: "metadata",
			Reason:     err.Error(),
		})
		return result, err
	}
	result.SuccessfulCount++
	result.NonCriticalFailures = append(result.NonCriticalFailures, nonCritical...)

	done := make(chan models.SyncResult, 1)
	o.bgSync.RunFullSync(ctx, st, func(percent int, detail string) {
		emit(models.PhaseAggregateData, percent, "syncing records", detail)
	}, func(res models.SyncResult) {
		done <- res
	})
	recordResult := <-done

	result.SuccessfulCount += recordResult.SuccessfulCount
	result.FailedCount += recordResult.FailedCount
	result.CriticalFailures = append(result.CriticalFailures, recordResult.CriticalFailures...)
	result.NonCriticalFailures = append(result.NonCriticalFailures, recordResult.NonCriticalFailures...)

	emit(models.PhaseReady, 100, "ready", "")
	return result, nil
}

func (o *sessionOrchestrator) Progress() (<-chan models.ProgressEvent, func()) {
	return o.progress.Subscribe()
}

func (o *sessionOrchestrator) AccountChanges() (<-chan models.Account, func()) {
	return o.accounts.Subscribe()
}

// emitter fans one run's progress out to the observable stream and, when
// given, the caller's direct callback.
func (o *sessionOrchestrator) emitter(runID string, report ProgressFunc) func(models.SyncPhase, int, string, string) {
	return func(phase models.SyncPhase, percent int, title, detail string) {
		o.progress.Publish(models.ProgressEvent{
			RunID:          runID,
			Phase:          phase,
			OverallPercent: percent,
			Title:          title,
			Detail:         detail,
		})
		if report != nil {
			report(percent, title)
		}
	}
}
