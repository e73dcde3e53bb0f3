package models

import "time"

// DataValue is a single aggregate value captured against a data set.
type DataValue struct {
	DataElementID string    `json:"dataElement"`
	Period        string    `json:"period"`
	OrgUnitID     string    `json:"orgUnit"`
	CategoryCombo string    `json:"categoryOptionCombo"`
	Value         string    `json:"value"`
	StoredAt      time.Time `json:"lastUpdated"`
}

// TrackerEvent is a single event captured inside a tracker or event program.
type TrackerEvent struct {
	UID        string    `json:"event"`
	ProgramID  string    `json:"program"`
	OrgUnitID  string    `json:"orgUnit"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
	DataJSON   string    `json:"dataValues"`
}
