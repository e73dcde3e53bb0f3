package models

import "time"

// CredentialRecord is the persisted evidence of the last successful login,
// used to validate offline logins. The password itself is never stored; only
// an Argon2id hash with its salt.
type CredentialRecord struct {
	Username  string
	ServerURL string

	// PasswordHash is the base64-encoded Argon2id digest of the password.
	PasswordHash string
	// Salt is the base64-encoded random salt the hash was derived with.
	Salt string

	// HashCreatedAt anchors the offline freshness window: once the hash is
	// older than the window, offline login is refused even on a match.
	HashCreatedAt time.Time

	// LastValidatedAt is bumped on every successful offline validation.
	LastValidatedAt time.Time

	// OfflineMode marks that the most recent session was established
	// without contacting the server.
	OfflineMode bool
}
