package models

// SyncFailure describes a single failure observed during a sync pass.
type SyncFailure struct {
	// Collection names the metadata or record collection the failure
	// relates to ("organisation units", "programs", ...).
	Collection string
	// Reason carries the last observed error text for the failure.
	Reason string
}

// SyncResult is the transient outcome of one metadata-sync attempt series.
// It is computed per call and never persisted.
type SyncResult struct {
	SuccessfulCount int
	FailedCount     int

	// CriticalFailures block login entirely.
	CriticalFailures []SyncFailure
	// NonCriticalFailures degrade the session but let login proceed.
	NonCriticalFailures []SyncFailure
}

// IsCritical reports whether the result must abort the login flow.
func (r SyncResult) IsCritical() bool {
	return len(r.CriticalFailures) > 0
}
