// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	countOrgUnits = `
		SELECT COUNT(*)
		FROM org_units;`

	countPrograms = `
		SELECT COUNT(*)
		FROM programs;`

	countDataSets = `
		SELECT COUNT(*)
		FROM data_sets;`

	countDataValues = `
		SELECT COUNT(*)
		FROM data_values;`

	countTrackerEventsByProgram = `
		SELECT COUNT(*)
		FROM tracker_events
		WHERE program_uid = $1;`

	deleteAllOrgUnits = `
		DELETE FROM org_units;`

	deleteAllPrograms = `
		DELETE FROM programs;`

	deleteAllDataSets = `
		DELETE FROM data_sets;`

	deleteAllDataValues = `
		DELETE FROM data_values;`

	deleteAllTrackerEvents = `
		DELETE FROM tracker_events;`

	deleteTrackerEventsByProgram = `
		DELETE FROM tracker_events
		WHERE program_uid = $1;`
)
