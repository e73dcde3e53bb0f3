package adapter

import (
	"context"

	"github.com/HISP-Uganda/fieldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_engine_mock.go -package=mock

// RemoteEngine defines transport-agnostic communication with the remote
// data-collection server plus access to the engine's local cache of
// downloaded collections. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
//
// The engine permits exactly one authenticated identity at a time; callers
// go through [SessionClient] rather than holding an engine directly.
type RemoteEngine interface {
	// Login authenticates against serverURL with the given credentials and
	// stores the issued bearer token. Returns the display name the server
	// reports for the user. Returns [ErrAlreadyAuthenticated] when the
	// shared session is still bound to another identity.
	Login(ctx context.Context, username, password, serverURL string) (displayName string, err error)

	// Logout releases the server-side session and drops the bearer token.
	// Tolerates an engine that is already logged out.
	Logout(ctx context.Context) error

	// IsAuthenticated reports whether a non-expired bearer token is held.
	// Pure read, no side effects.
	IsAuthenticated() bool

	// DownloadMetadata pulls the reference collections (organisational
	// units, program definitions, dataset definitions) into the engine
	// cache, reporting coarse percentage progress through onProgress.
	// Collections fetched before a failing step remain cached. Returns
	// [ErrOptionalConfigMissing] when only the optional server
	// configuration is absent.
	DownloadMetadata(ctx context.Context, onProgress func(percent int)) error

	// DownloadAggregateData pulls the bulk aggregate values into the cache.
	DownloadAggregateData(ctx context.Context) error

	// DownloadTrackerData pulls the events of one tracker/event program
	// into the cache.
	DownloadTrackerData(ctx context.Context, programID string) error

	// Metadata returns the cached reference collections. Empty bundle when
	// nothing has been downloaded yet.
	Metadata() models.MetadataBundle

	// AggregateValues returns the cached aggregate values.
	AggregateValues() []models.DataValue

	// TrackerEvents returns the cached events of one program.
	TrackerEvents(programID string) []models.TrackerEvent

	// WipeLocal erases the engine's in-memory and on-disk cache. Works
	// while unauthenticated.
	WipeLocal(ctx context.Context) error

	// CacheDir returns the on-disk cache directory, for fallback deletion
	// when WipeLocal itself fails.
	CacheDir() string
}
