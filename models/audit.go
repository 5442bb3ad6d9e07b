package models

import "time"

// OperationType tags a route mutation recorded in the audit log and carried
// by change events.
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
)

// RouteAudit is one immutable row of the mutation log: who changed what, when.
// Rows are written in the same transaction as the mutation they describe and
// are never updated or deleted afterwards.
//
// RouteID is a plain reference, not a foreign key, so DELETE audit rows keep
// pointing at the removed route's identifier.
type RouteAudit struct {
	ID            int64         `json:"id"`
	RouteID       int64         `json:"route_id"`
	Operation     OperationType `json:"operation"`
	Timestamp     time.Time     `json:"timestamp"`
	PerformedByID int64         `json:"performed_by_id"`

	// PerformedBy is the performing user's username, resolved on read.
	PerformedBy string `json:"performed_by"`

	Description string `json:"description"`
}

// TableName returns the name of the database table
// associated with the RouteAudit model.
func (a RouteAudit) TableName() string {
	return "route_audits"
}
