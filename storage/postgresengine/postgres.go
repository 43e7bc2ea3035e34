package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/bookapp-api/storage"
	"github.com/AntonStoeckl/bookapp-api/storage/postgresengine/internal/adapters"
)

const (
	defaultAuthorsTableName     = "authors"
	defaultBooksTableName       = "books"
	logMsgBuildQueryFailed      = "failed to build sql statement"
	logMsgDBQueryFailed         = "database query execution failed"
	logMsgDBExecFailed          = "database statement execution failed"
	logMsgCloseRowsFailed       = "failed to close database rows"
	logMsgScanRowFailed         = "failed to scan database row"
	logMsgRowsAffectedFailed    = "failed to get rows affected count"
	logMsgSQLExecuted           = "executed sql for: "
	logAttrError                = "error"
	logAttrQuery                = "query"
	logAttrDurationMS           = "duration_ms"
	logActionInsertAuthor       = "insert author"
	logActionUpdateAuthor       = "update author"
	logActionDeleteAuthor       = "delete author"
	logActionFindAuthor         = "find author"
	logActionFindAllAuthors     = "find all authors"
	logActionInsertBook         = "insert book"
	logActionUpdateBook         = "update book"
	logActionDeleteBook         = "delete book"
	logActionFindBook           = "find book"
	logActionFindAllBooks       = "find all books"
	logActionEnsureSchema       = "ensure schema"
	colSeq                      = "seq"
	colID                       = "id"
	colFirstName                = "first_name"
	colLastName                 = "last_name"
	colTitle                    = "title"
	colGenre                    = "genre"
	colAuthorID                 = "author_id"
	colReleaseYear              = "release_year"
	dialectPostgres             = "postgres"
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
)

type sqlQueryString = string

// Store persists authors and books in PostgreSQL.
type Store struct {
	db               adapters.DBAdapter
	authorsTableName string
	booksTableName   string
	logger           Logger
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, storage.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, storage.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, storage.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:               db,
		authorsTableName: defaultAuthorsTableName,
		booksTableName:   defaultBooksTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// EnsureSchema creates the authors and books tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	authors := quoteIdentifier(s.authorsTableName)
	books := quoteIdentifier(s.booksTableName)

	statements := []sqlQueryString{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s BIGSERIAL NOT NULL,
			%s UUID PRIMARY KEY,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL
		)`, authors, colSeq, colID, colFirstName, colLastName),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s BIGSERIAL NOT NULL,
			%s UUID PRIMARY KEY,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL,
			%s UUID NOT NULL REFERENCES %s (%s) ON DELETE RESTRICT,
			%s INTEGER NOT NULL
		)`, books, colSeq, colID, colTitle, colGenre, colAuthorID, authors, colID, colReleaseYear),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`,
			quoteIdentifier(s.booksTableName+"_author_id_idx"), books, colAuthorID),
	}

	for _, statement := range statements {
		if _, err := s.exec(ctx, statement, logActionEnsureSchema); err != nil {
			return err
		}
	}

	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return errors.Join(storage.ErrPingFailed, err)
	}

	return nil
}

// InsertAuthor stores a new author.
func (s *Store) InsertAuthor(ctx context.Context, author storage.AuthorRecord) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.authorsTableName).
		Rows(goqu.Record{
			colID:        author.ID.String(),
			colFirstName: author.FirstName,
			colLastName:  author.LastName,
		})

	sqlQuery, err := s.toSQL(insertStmt.ToSQL())
	if err != nil {
		return err
	}

	_, err = s.exec(ctx, sqlQuery, logActionInsertAuthor)
	if hasSQLState(err, sqlStateUniqueViolation) {
		return errors.Join(storage.ErrDuplicateID, err)
	}

	return err
}

// UpdateAuthor overwrites the names of an existing author.
func (s *Store) UpdateAuthor(ctx context.Context, author storage.AuthorRecord) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.authorsTableName).
		Set(goqu.Record{
			colFirstName: author.FirstName,
			colLastName:  author.LastName,
		}).
		Where(goqu.C(colID).Eq(author.ID.String()))

	sqlQuery, err := s.toSQL(updateStmt.ToSQL())
	if err != nil {
		return err
	}

	return s.execExpectingOneRow(ctx, sqlQuery, logActionUpdateAuthor)
}

// DeleteAuthor removes an author. It fails with storage.ErrAuthorReferenced while books reference the author.
func (s *Store) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.authorsTableName).
		Where(goqu.C(colID).Eq(id.String()))

	sqlQuery, err := s.toSQL(deleteStmt.ToSQL())
	if err != nil {
		return err
	}

	err = s.execExpectingOneRow(ctx, sqlQuery, logActionDeleteAuthor)
	if hasSQLState(err, sqlStateForeignKeyViolation) {
		return errors.Join(storage.ErrAuthorReferenced, err)
	}

	return err
}

// FindAuthor loads a single author or fails with storage.ErrNotFound.
func (s *Store) FindAuthor(ctx context.Context, id uuid.UUID) (storage.AuthorRecord, error) {
	authors, err := s.queryAuthors(ctx, goqu.C(colID).Eq(id.String()), logActionFindAuthor)
	if err != nil {
		return storage.AuthorRecord{}, err
	}

	if len(authors) == 0 {
		return storage.AuthorRecord{}, storage.ErrNotFound
	}

	return authors[0], nil
}

// FindAllAuthors loads all authors in insertion order.
func (s *Store) FindAllAuthors(ctx context.Context) ([]storage.AuthorRecord, error) {
	return s.queryAuthors(ctx, nil, logActionFindAllAuthors)
}

// InsertBook stores a new book. It fails with storage.ErrAuthorNotFound if the author does not exist.
func (s *Store) InsertBook(ctx context.Context, book storage.BookRecord) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.booksTableName).
		Rows(goqu.Record{
			colID:          book.ID.String(),
			colTitle:       book.Title,
			colGenre:       book.Genre,
			colAuthorID:    book.AuthorID.String(),
			colReleaseYear: book.ReleaseYear,
		})

	sqlQuery, err := s.toSQL(insertStmt.ToSQL())
	if err != nil {
		return err
	}

	_, err = s.exec(ctx, sqlQuery, logActionInsertBook)
	if hasSQLState(err, sqlStateForeignKeyViolation) {
		return errors.Join(storage.ErrAuthorNotFound, err)
	}

	if hasSQLState(err, sqlStateUniqueViolation) {
		return errors.Join(storage.ErrDuplicateID, err)
	}

	return err
}

// UpdateBook overwrites all fields of an existing book.
// A missing book wins over a missing author: zero affected rows report storage.ErrNotFound.
func (s *Store) UpdateBook(ctx context.Context, book storage.BookRecord) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.booksTableName).
		Set(goqu.Record{
			colTitle:       book.Title,
			colGenre:       book.Genre,
			colAuthorID:    book.AuthorID.String(),
			colReleaseYear: book.ReleaseYear,
		}).
		Where(goqu.C(colID).Eq(book.ID.String()))

	sqlQuery, err := s.toSQL(updateStmt.ToSQL())
	if err != nil {
		return err
	}

	err = s.execExpectingOneRow(ctx, sqlQuery, logActionUpdateBook)
	if hasSQLState(err, sqlStateForeignKeyViolation) {
		return errors.Join(storage.ErrAuthorNotFound, err)
	}

	return err
}

// DeleteBook removes a book or fails with storage.ErrNotFound.
func (s *Store) DeleteBook(ctx context.Context, id uuid.UUID) error {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.booksTableName).
		Where(goqu.C(colID).Eq(id.String()))

	sqlQuery, err := s.toSQL(deleteStmt.ToSQL())
	if err != nil {
		return err
	}

	return s.execExpectingOneRow(ctx, sqlQuery, logActionDeleteBook)
}

// FindBook loads a single book or fails with storage.ErrNotFound.
func (s *Store) FindBook(ctx context.Context, id uuid.UUID) (storage.BookRecord, error) {
	books, err := s.queryBooks(ctx, goqu.C(colID).Eq(id.String()), logActionFindBook)
	if err != nil {
		return storage.BookRecord{}, err
	}

	if len(books) == 0 {
		return storage.BookRecord{}, storage.ErrNotFound
	}

	return books[0], nil
}

// FindAllBooks loads all books in insertion order.
func (s *Store) FindAllBooks(ctx context.Context) ([]storage.BookRecord, error) {
	return s.queryBooks(ctx, nil, logActionFindAllBooks)
}

func (s *Store) queryAuthors(ctx context.Context, where exp.Expression, action string) ([]storage.AuthorRecord, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.authorsTableName).
		Select(colID, colFirstName, colLastName).
		Order(goqu.I(colSeq).Asc())

	if where != nil {
		selectStmt = selectStmt.Where(where)
	}

	sqlQuery, err := s.toSQL(selectStmt.ToSQL())
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, sqlQuery, action)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	authors := make([]storage.AuthorRecord, 0)
	for rows.Next() {
		var author storage.AuthorRecord
		if scanErr := rows.Scan(&author.ID, &author.FirstName, &author.LastName); scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(storage.ErrScanningDBRowFailed, scanErr)
		}

		authors = append(authors, author)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logError(logMsgDBQueryFailed, rowsErr)
		return nil, errors.Join(storage.ErrQueryingFailed, rowsErr)
	}

	return authors, nil
}

func (s *Store) queryBooks(ctx context.Context, where exp.Expression, action string) ([]storage.BookRecord, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.booksTableName).
		Select(colID, colTitle, colGenre, colAuthorID, colReleaseYear).
		Order(goqu.I(colSeq).Asc())

	if where != nil {
		selectStmt = selectStmt.Where(where)
	}

	sqlQuery, err := s.toSQL(selectStmt.ToSQL())
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, sqlQuery, action)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(rows)

	books := make([]storage.BookRecord, 0)
	for rows.Next() {
		var book storage.BookRecord
		if scanErr := rows.Scan(&book.ID, &book.Title, &book.Genre, &book.AuthorID, &book.ReleaseYear); scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(storage.ErrScanningDBRowFailed, scanErr)
		}

		books = append(books, book)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logError(logMsgDBQueryFailed, rowsErr)
		return nil, errors.Join(storage.ErrQueryingFailed, rowsErr)
	}

	return books, nil
}

// toSQL checks the output of a goqu ToSQL call. goqu interpolates all values, so params stay empty.
func (s *Store) toSQL(sqlQuery string, _ []any, toSQLErr error) (sqlQueryString, error) {
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr)
		return "", errors.Join(storage.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) query(ctx context.Context, sqlQuery sqlQueryString, action string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(storage.ErrQueryingFailed, queryErr)
	}

	return rows, nil
}

func (s *Store) exec(ctx context.Context, sqlQuery sqlQueryString, action string) (int64, error) {
	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if execErr != nil {
		s.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, errors.Join(storage.ErrExecutingFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(storage.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

func (s *Store) execExpectingOneRow(ctx context.Context, sqlQuery sqlQueryString, action string) error {
	rowsAffected, err := s.exec(ctx, sqlQuery, action)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// closeRows closes database rows and logs any errors.
func (s *Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (s *Store) logQueryWithDuration(sqlQuery sqlQueryString, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (s *Store) logError(msg string, err error, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, append([]any{logAttrError, err.Error()}, args...)...)
	}
}

// hasSQLState reports whether err carries the given SQLSTATE, raised by either pgx or lib/pq.
func hasSQLState(err error, sqlState string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlState
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlState
	}

	return false
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
