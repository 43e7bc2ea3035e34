package storage

import "errors"

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAuthorNotFound is returned when a book references an author that does not exist.
	ErrAuthorNotFound = errors.New("referenced author not found")

	// ErrAuthorReferenced is returned when deleting an author that is still referenced by books.
	ErrAuthorReferenced = errors.New("author is referenced by books")

	// ErrDuplicateID is returned when inserting a record whose id already exists.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrNilDatabaseConnection is returned when an engine is created without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an empty table name is configured.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrBuildingQueryFailed is returned when a SQL statement cannot be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when a select statement fails.
	ErrQueryingFailed = errors.New("querying failed")

	// ErrExecutingFailed is returned when an insert, update, or delete statement fails.
	ErrExecutingFailed = errors.New("executing statement failed")

	// ErrScanningDBRowFailed is returned when a result row cannot be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrGettingRowsAffectedFailed is returned when the affected row count is unavailable.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrPingFailed is returned when the storage backend is unreachable.
	ErrPingFailed = errors.New("storage ping failed")
)
