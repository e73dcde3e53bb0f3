package service

import "errors"

var (
	// ErrNoStoredCredentials is returned when the credential vault is
	// empty.
	ErrNoStoredCredentials = errors.New("no stored credentials")

	// ErrCredentialsStale is returned when the stored credential hash is
	// older than the offline freshness window.
	ErrCredentialsStale = errors.New("stored credentials are stale")

	// ErrOfflineLoginRejected is returned when the supplied identity does
	// not match the stored credential set.
	ErrOfflineLoginRejected = errors.New("offline login rejected")

	// ErrNoActiveAccount is returned when an operation needs an active
	// account and none is set.
	ErrNoActiveAccount = errors.New("no active account")

	// ErrAccountNotFound is returned when the requested account was never
	// registered on this installation.
	ErrAccountNotFound = errors.New("account not found")

	// ErrMetadataSyncFailed is returned when the metadata download failed
	// on every attempt and the local store holds no usable reference data.
	ErrMetadataSyncFailed = errors.New("metadata sync failed")
)
