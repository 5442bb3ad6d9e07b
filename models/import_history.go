package models

import "time"

// ImportStatus is the lifecycle state of one bulk-import attempt.
type ImportStatus string

const (
	// ImportPending marks a history row created before any import work starts.
	ImportPending ImportStatus = "PENDING"

	// ImportSuccess marks an import whose entire batch was committed.
	ImportSuccess ImportStatus = "SUCCESS"

	// ImportFailure marks an import that was fully unwound. RecordsImported
	// is always zero for failed imports.
	ImportFailure ImportStatus = "FAILURE"
)

// ImportHistory is one row per bulk-import attempt. The row is created with
// status PENDING before any data is touched and finalized exactly once when
// the import ends, so every attempt leaves a queryable outcome even on total
// failure.
type ImportHistory struct {
	ID        int64        `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Status    ImportStatus `json:"status"`

	// PerformedBy is the username of the importing user.
	PerformedBy string `json:"performed_by"`

	// RecordsImported counts the standalone coordinates, locations, and
	// routes committed by a successful import. Zero for failed imports.
	RecordsImported int `json:"records_imported"`

	// FileURL is the retrievable reference to the staged source file,
	// recorded after the blob upload succeeds. Cleared when the staged
	// blob is deleted during failure cleanup.
	FileURL *string `json:"file_url,omitempty"`

	// ErrorMessage carries the triggering error for failed imports.
	ErrorMessage *string `json:"error_message,omitempty"`
}

// TableName returns the name of the database table
// associated with the ImportHistory model.
func (h ImportHistory) TableName() string {
	return "import_history"
}
