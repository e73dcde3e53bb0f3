package models

// SyncPhase labels the stage a login or background sync run is in.
type SyncPhase string

const (
	PhaseAuthenticating SyncPhase = "authenticating"
	PhaseMetadata       SyncPhase = "metadata"
	PhaseAggregateData  SyncPhase = "aggregate_data"
	PhaseTrackerData    SyncPhase = "tracker_data"
	PhaseRehydration    SyncPhase = "rehydration"
	PhaseReady          SyncPhase = "ready"
)

// ProgressEvent is a single item of the observable progress stream consumed
// by the UI boundary. Intermediate events may be coalesced; the consumer is
// guaranteed to observe the latest value and never an out-of-order one.
type ProgressEvent struct {
	// RunID correlates all events of one login or background sync run.
	RunID string

	Phase SyncPhase

	// OverallPercent is the position in the whole flow, 0-100. The metadata
	// stage occupies the 30-80 band, authentication the band below it.
	OverallPercent int

	Title  string
	Detail string
}
