package sqliteutil

import "errors"

var (
	// ErrExists is returned when creating a database at a path that already has a file.
	ErrExists = errors.New("sqliteutil: database file already exists")

	// ErrNotFound is returned when opening a database file that does not exist.
	ErrNotFound = errors.New("sqliteutil: database file not found")

	// ErrInvalidHandle is returned when an operation is attempted on a nil or released handle.
	ErrInvalidHandle = errors.New("sqliteutil: invalid database handle")

	// ErrInvalidIdentifier is returned when a table or column name fails validation.
	ErrInvalidIdentifier = errors.New("sqliteutil: invalid SQL identifier")

	// ErrOpenFailed is returned when the engine fails to open or create a database file.
	ErrOpenFailed = errors.New("sqliteutil: open failed")

	// ErrCloseFailed is returned when the engine reports an error releasing a handle.
	ErrCloseFailed = errors.New("sqliteutil: close failed")

	// ErrExecFailed is returned when a fire-and-forget statement fails to execute.
	ErrExecFailed = errors.New("sqliteutil: execute failed")

	// ErrQueryFailed is returned when preparing or stepping a read query fails.
	ErrQueryFailed = errors.New("sqliteutil: query failed")

	// ErrScanFailed is returned when a result value cannot be read as the expected type.
	ErrScanFailed = errors.New("sqliteutil: scan failed")

	// ErrClearFailed is returned when deleting all rows from a table fails.
	ErrClearFailed = errors.New("sqliteutil: clear table failed")
)
