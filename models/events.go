package models

// RouteChangeEvent is published to live subscribers after a route mutation
// commits. For CREATE and UPDATE the event carries a snapshot of the
// resulting record; for DELETE only the identifier.
//
// Delivery is best-effort, at-most-once per subscriber connection. Events for
// the same route reach a given subscriber in commit order.
type RouteChangeEvent struct {
	Operation OperationType `json:"operation"`
	RouteID   int64         `json:"route_id"`
	Route     *Route        `json:"route,omitempty"`

	// RouteIDs is set instead of RouteID on aggregate events covering a
	// bulk deletion.
	RouteIDs []int64 `json:"route_ids,omitempty"`
}

// ImportHistoryEvent is published after an import attempt is finalized,
// carrying the finalized history row.
type ImportHistoryEvent struct {
	History ImportHistory `json:"history"`
}
