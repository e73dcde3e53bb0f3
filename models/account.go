package models

import "time"

// Account is a distinct (username, server) identity with its own isolated
// local store. Accounts are created on the first successful login for a new
// pair and are immutable afterwards except for LastUsedAt.
type Account struct {
	// ID is a stable hash of username and server URL. The same pair always
	// yields the same ID, so repeated logins reuse the same local store.
	ID string `json:"id"`

	Username  string `json:"username"`
	ServerURL string `json:"server_url"`

	// DisplayName is the human-readable name reported by the server on the
	// first login; falls back to the username when the server omits it.
	DisplayName string `json:"display_name"`

	// LocalStoreName is the deterministic file name of the account-scoped
	// SQLite store, derived from ID.
	LocalStoreName string `json:"local_store_name"`

	LastUsedAt time.Time `json:"last_used_at"`
}
