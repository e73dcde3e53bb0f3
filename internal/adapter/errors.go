package adapter

import "errors"

// Sentinel errors mapped from transport responses. Callers match them with
// [errors.Is]; the session orchestrator translates them into user-facing
// messages.
var (
	// ErrBadCredentials is returned when the server rejects the supplied
	// username/password pair.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrAlreadyAuthenticated is returned when the server refuses a login
	// because the shared session is still bound to another identity. The
	// session client resolves it by logging out and retrying once.
	ErrAlreadyAuthenticated = errors.New("already authenticated")

	// ErrNotAuthenticated is returned by authenticated endpoints when no
	// session is active. Logout treats it as success.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAccountDisabled is returned when the server reports the account as
	// disabled or locked.
	ErrAccountDisabled = errors.New("account disabled or locked")

	// ErrServerVersionUnsupported is returned when the server version is too
	// old for this client.
	ErrServerVersionUnsupported = errors.New("unsupported server version")

	// ErrUnreachableHost is returned when the request never produced an HTTP
	// response (DNS failure, connection refused, TLS failure, timeout).
	ErrUnreachableHost = errors.New("server unreachable")

	// ErrOptionalConfigMissing is returned by the metadata download when the
	// server has no optional configuration published. The metadata sync
	// engine treats the download as complete in that case.
	ErrOptionalConfigMissing = errors.New("optional configuration missing")
)
