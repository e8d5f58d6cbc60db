package pg

import "errors"

var (
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, use PG_CONN_URL env var")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")

	ErrClosed  = errors.New("database is closed")
	ErrExecute = errors.New("failed to execute statement")
	ErrFetch   = errors.New("failed to fetch rows")
	ErrCommit  = errors.New("failed to commit transaction")
)
