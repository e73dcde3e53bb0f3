package service

import (
	"context"
	"time"

	"github.com/HISP-Uganda/fieldsync/internal/store"
	"github.com/HISP-Uganda/fieldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ProgressFunc receives coarse progress for a long-running operation.
// percent is within [0,100]; detail is a short human-readable step name.
type ProgressFunc func(percent int, detail string)

// AccountRegistry tracks every account that has ever signed in on this
// installation, and which of them is active. Account identity is derived
// deterministically from username and server URL, so the same pair always
// maps to the same account and the same local store file.
type AccountRegistry interface {
	// UpsertAccount registers (or refreshes) the account for the given
	// identity and returns it with its derived ID and local store name.
	UpsertAccount(ctx context.Context, username, serverURL, displayName string) (models.Account, error)

	// Account returns the registered account with the given derived ID.
	Account(id string) (models.Account, error)

	// Accounts lists every registered account.
	Accounts() ([]models.Account, error)

	// ActiveAccount returns the account the client is currently working as.
	// Returns ErrNoActiveAccount when no account is active.
	ActiveAccount() (models.Account, error)

	// SetActiveAccount marks the given registered account as active.
	SetActiveAccount(id string) error

	// ClearActiveAccount drops the active marker, keeping registrations.
	ClearActiveAccount() error

	// RemoveAll forgets every registration and the active marker.
	RemoveAll() error
}

// CredentialVault stores the single most recent successfully used
// credential set, hashed, for offline sign-in.
type CredentialVault interface {
	// Save replaces the stored credential set with a freshly salted hash
	// of the given identity.
	Save(ctx context.Context, username, password, serverURL string) error

	// Validate checks the given identity against the stored credential
	// set. It only succeeds when the identity matches, the hash matches
	// and the stored hash is still inside the freshness window; a
	// successful validation refreshes the last-validated marker.
	Validate(ctx context.Context, username, password, serverURL string) error

	// Stored returns the stored credential record without secrets beyond
	// the hash itself. Returns ErrNoStoredCredentials when empty.
	Stored() (models.CredentialRecord, error)

	// SetOfflineMode records whether the current session was established
	// offline.
	SetOfflineMode(enabled bool) error

	// OfflineMode reports whether the current session was established
	// offline. False when nothing is stored.
	OfflineMode() bool

	// Clear wipes the vault.
	Clear() error
}

// MetadataSyncEngine downloads the reference collections into an account
// store, retrying transient failures.
type MetadataSyncEngine interface {
	// Sync downloads metadata through the shared session and persists it
	// into st. The returned failures are non-critical (the sync still
	// counts as successful); a non-nil error means the sync failed
	// critically after all attempts.
	Sync(ctx context.Context, st store.Store, report ProgressFunc) ([]models.SyncFailure, error)
}

// BackgroundSyncCoordinator runs the record-level download that follows a
// metadata sync: aggregate values, then per-program tracker events. Empty
// remote collections never overwrite non-empty local tables.
type BackgroundSyncCoordinator interface {
	// RunFullSync executes the full record sync against st. Individual
	// collection failures are collected rather than aborting the run.
	// onComplete is invoked exactly once with the final result, even when
	// the run panics.
	RunFullSync(ctx context.Context, st store.Store, report ProgressFunc, onComplete func(models.SyncResult))
}

// SessionOrchestrator is the client's front door: it sequences
// authentication, account registration, store selection and the initial
// sync into single user-facing operations.
type SessionOrchestrator interface {
	// Login authenticates online, registers and activates the account,
	// opens its store and runs the initial metadata sync.
	Login(ctx context.Context, username, password, serverURL string) (models.Account, error)

	// LoginWithProgress is Login with step-level progress reporting.
	LoginWithProgress(ctx context.Context, username, password, serverURL string, report ProgressFunc) (models.Account, error)

	// AttemptOfflineLogin validates the identity against the credential
	// vault and, on success, activates the account using only local data.
	AttemptOfflineLogin(ctx context.Context, username, password, serverURL string) (models.Account, error)

	// RestoreSessionIfNeeded re-establishes the remote session for the
	// active account when the client starts with a stale session. If the
	// session is still authenticated and the reopened store holds no
	// reference collections, a background rehydration is triggered.
	RestoreSessionIfNeeded(ctx context.Context) error

	// Logout ends the remote session and deactivates the account, keeping
	// the vault so offline login remains possible.
	Logout(ctx context.Context) error

	// SecureLogout is Logout plus a vault wipe.
	SecureLogout(ctx context.Context) error

	// WipeAllData removes every trace of every account from this
	// installation. Steps run in order and continue past failures.
	WipeAllData(ctx context.Context) error

	// ActiveAccount returns the currently active account.
	ActiveAccount() (models.Account, error)

	// SyncNow runs a metadata plus record sync for the active account.
	SyncNow(ctx context.Context) (models.SyncResult, error)

	// Progress subscribes to the orchestrator's progress stream. The
	// channel coalesces to the latest event; the returned func cancels
	// the subscription.
	Progress() (<-chan models.ProgressEvent, func())

	// AccountChanges subscribes to active-account changes, coalescing to
	// the latest value. Logout and wipe publish a zero account (empty ID)
	// so observers reset their cached view.
	AccountChanges() (<-chan models.Account, func())
}

// ResyncJob periodically re-runs a background sync while a session is
// active. It is idle until Start is called.
type ResyncJob interface {
	// Run starts the job with its configured interval. Implements
	// workers.Worker.
	Run()

	// Start stops any previous run and launches the ticker loop. A zero
	// or negative interval falls back to the configured default.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the loop and waits for it to exit. Safe when idle.
	Stop()
}
