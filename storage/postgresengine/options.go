package postgresengine

import "github.com/AntonStoeckl/bookapp-api/storage"

// Logger interface for SQL query logging, operational messages, warnings, and error reporting.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithAuthorsTableName sets the table name for authors.
func WithAuthorsTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return storage.ErrEmptyTableName
		}

		s.authorsTableName = tableName

		return nil
	}
}

// WithBooksTableName sets the table name for books.
func WithBooksTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return storage.ErrEmptyTableName
		}

		s.booksTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing (development use)
// Error level: failures that cause an operation to fail.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}
