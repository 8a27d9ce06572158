package model

import "time"

// SnapshotVersion is the current snapshot export format version.
const SnapshotVersion = 1

// Snapshot bundles the full asset and transaction state for backup and
// restore. Imports are validated and applied wholesale: a structural
// mismatch rejects the entire batch.
type Snapshot struct {
	Version      int           `json:"version"`
	ExportedAt   time.Time     `json:"exportedAt"`
	Assets       []Asset       `json:"assets"`
	Transactions []Transaction `json:"transactions"`
}

// ImportResult reports validated record counts after a snapshot import.
type ImportResult struct {
	Assets       int `json:"assets"`
	Transactions int `json:"transactions"`
}
