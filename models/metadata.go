package models

// OrgUnit is an organisational unit the user may capture data for.
type OrgUnit struct {
	UID      string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	ParentID string `json:"parent,omitempty"`
}

// Program is a tracker or event program definition.
type Program struct {
	UID         string `json:"id"`
	Name        string `json:"name"`
	ProgramType string `json:"programType"`
}

// DataSet is an aggregate data set definition.
type DataSet struct {
	UID        string `json:"id"`
	Name       string `json:"name"`
	PeriodType string `json:"periodType"`
}

// MetadataBundle groups the reference collections that must be present
// before record-level data is usable. Partial bundles are valid: the client
// can operate in a degraded mode with any one collection populated.
type MetadataBundle struct {
	OrgUnits []OrgUnit `json:"organisationUnits"`
	Programs []Program `json:"programs"`
	DataSets []DataSet `json:"dataSets"`
}

// IsEmpty reports whether no reference collection holds any rows.
func (b MetadataBundle) IsEmpty() bool {
	return len(b.OrgUnits) == 0 && len(b.Programs) == 0 && len(b.DataSets) == 0
}
