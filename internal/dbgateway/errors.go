package dbgateway

import "errors"

// BackendError wraps a failure talking to the backend SQL Server,
// distinguishing "we couldn't reach the database" from a query that
// legitimately returned zero rows (spec §5, §9 reconnect semantics).
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return "dbgateway: " + e.Op + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// ErrNotConnected is the cause Query, QueryRow and Ping report, wrapped
// in a BackendError, when database/sql says the connection is done.
var ErrNotConnected = errors.New("database not connected")
