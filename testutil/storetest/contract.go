package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookapp-api/storage"
)

// Store is the method set shared by all storage engines.
type Store interface {
	InsertAuthor(ctx context.Context, author storage.AuthorRecord) error
	UpdateAuthor(ctx context.Context, author storage.AuthorRecord) error
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
	FindAuthor(ctx context.Context, id uuid.UUID) (storage.AuthorRecord, error)
	FindAllAuthors(ctx context.Context) ([]storage.AuthorRecord, error)
	InsertBook(ctx context.Context, book storage.BookRecord) error
	UpdateBook(ctx context.Context, book storage.BookRecord) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
	FindBook(ctx context.Context, id uuid.UUID) (storage.BookRecord, error)
	FindAllBooks(ctx context.Context) ([]storage.BookRecord, error)
	Ping(ctx context.Context) error
}

// NewStoreFunc creates an empty Store for one subtest.
type NewStoreFunc func(t *testing.T) Store

// GivenAuthor builds an AuthorRecord with a fresh id.
func GivenAuthor(firstName, lastName string) storage.AuthorRecord {
	return storage.AuthorRecord{ID: uuid.New(), FirstName: firstName, LastName: lastName}
}

// GivenBook builds a BookRecord with a fresh id.
func GivenBook(title string, authorID uuid.UUID, releaseYear int) storage.BookRecord {
	return storage.BookRecord{ID: uuid.New(), Title: title, Genre: "Fiction", AuthorID: authorID, ReleaseYear: releaseYear}
}

// Run executes the contract suite against stores created by newStore.
//
//nolint:funlen
func Run(t *testing.T, newStore NewStoreFunc) {
	t.Run("ping_succeeds", func(t *testing.T) {
		store := newStore(t)

		assert.NoError(t, store.Ping(ctxWithTimeout(t)))
	})

	t.Run("insert_and_find_author", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")

		// act
		err := store.InsertAuthor(ctx, author)

		// assert
		require.NoError(t, err)
		found, findErr := store.FindAuthor(ctx, author.ID)
		require.NoError(t, findErr)
		assert.Equal(t, author, found)
	})

	t.Run("insert_author_with_duplicate_id_fails", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))

		// act
		err := store.InsertAuthor(ctx, author)

		// assert
		assert.ErrorIs(t, err, storage.ErrDuplicateID)
	})

	t.Run("find_unknown_author_fails_with_not_found", func(t *testing.T) {
		store := newStore(t)

		_, err := store.FindAuthor(ctxWithTimeout(t), uuid.New())

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("update_author", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))
		author.FirstName = "Franklin"

		// act
		err := store.UpdateAuthor(ctx, author)

		// assert
		require.NoError(t, err)
		found, findErr := store.FindAuthor(ctx, author.ID)
		require.NoError(t, findErr)
		assert.Equal(t, "Franklin", found.FirstName)
	})

	t.Run("update_unknown_author_fails_with_not_found", func(t *testing.T) {
		store := newStore(t)

		err := store.UpdateAuthor(ctxWithTimeout(t), GivenAuthor("Nobody", "Known"))

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete_author", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))

		// act
		err := store.DeleteAuthor(ctx, author.ID)

		// assert
		require.NoError(t, err)
		_, findErr := store.FindAuthor(ctx, author.ID)
		assert.ErrorIs(t, findErr, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteAuthor(ctx, author.ID), storage.ErrNotFound)
	})

	t.Run("delete_referenced_author_fails", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))
		require.NoError(t, store.InsertBook(ctx, GivenBook("Dune", author.ID, 1965)))

		// act
		err := store.DeleteAuthor(ctx, author.ID)

		// assert
		assert.ErrorIs(t, err, storage.ErrAuthorReferenced)
		_, findErr := store.FindAuthor(ctx, author.ID)
		assert.NoError(t, findErr, "the author must still exist")
	})

	t.Run("find_all_authors_in_insertion_order", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		first := GivenAuthor("Ursula", "Le Guin")
		second := GivenAuthor("Frank", "Herbert")
		third := GivenAuthor("Isaac", "Asimov")
		for _, author := range []storage.AuthorRecord{first, second, third} {
			require.NoError(t, store.InsertAuthor(ctx, author))
		}
		second.LastName = "Herbert Jr."
		require.NoError(t, store.UpdateAuthor(ctx, second))

		// act
		authors, err := store.FindAllAuthors(ctx)

		// assert
		require.NoError(t, err)
		assert.Equal(t, []storage.AuthorRecord{first, second, third}, authors)
	})

	t.Run("find_all_authors_on_empty_store", func(t *testing.T) {
		store := newStore(t)

		authors, err := store.FindAllAuthors(ctxWithTimeout(t))

		require.NoError(t, err)
		assert.NotNil(t, authors)
		assert.Empty(t, authors)
	})

	t.Run("insert_and_find_book", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))
		book := GivenBook("Dune", author.ID, 1965)

		// act
		err := store.InsertBook(ctx, book)

		// assert
		require.NoError(t, err)
		found, findErr := store.FindBook(ctx, book.ID)
		require.NoError(t, findErr)
		assert.Equal(t, book, found)
	})

	t.Run("insert_book_with_unknown_author_fails", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		book := GivenBook("Dune", uuid.New(), 1965)

		// act
		err := store.InsertBook(ctx, book)

		// assert
		assert.ErrorIs(t, err, storage.ErrAuthorNotFound)
		_, findErr := store.FindBook(ctx, book.ID)
		assert.ErrorIs(t, findErr, storage.ErrNotFound)
	})

	t.Run("update_book", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		otherAuthor := GivenAuthor("Brian", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))
		require.NoError(t, store.InsertAuthor(ctx, otherAuthor))
		book := GivenBook("Dune", author.ID, 1965)
		require.NoError(t, store.InsertBook(ctx, book))
		book.Title = "Dune Messiah"
		book.Genre = "Science Fiction"
		book.AuthorID = otherAuthor.ID
		book.ReleaseYear = 1969

		// act
		err := store.UpdateBook(ctx, book)

		// assert
		require.NoError(t, err)
		found, findErr := store.FindBook(ctx, book.ID)
		require.NoError(t, findErr)
		assert.Equal(t, book, found)
	})

	t.Run("update_book_with_unknown_author_fails_and_keeps_book", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))
		book := GivenBook("Dune", author.ID, 1965)
		require.NoError(t, store.InsertBook(ctx, book))
		changed := book
		changed.AuthorID = uuid.New()
		changed.Title = "Changed"

		// act
		err := store.UpdateBook(ctx, changed)

		// assert
		assert.ErrorIs(t, err, storage.ErrAuthorNotFound)
		found, findErr := store.FindBook(ctx, book.ID)
		require.NoError(t, findErr)
		assert.Equal(t, book, found)
	})

	t.Run("update_unknown_book_fails_with_not_found", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))

		// act
		err := store.UpdateBook(ctx, GivenBook("Dune", author.ID, 1965))

		// assert
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("update_unknown_book_with_unknown_author_fails_with_not_found", func(t *testing.T) {
		store := newStore(t)

		err := store.UpdateBook(ctxWithTimeout(t), GivenBook("Dune", uuid.New(), 1965))

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete_book", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))
		book := GivenBook("Dune", author.ID, 1965)
		require.NoError(t, store.InsertBook(ctx, book))

		// act
		err := store.DeleteBook(ctx, book.ID)

		// assert
		require.NoError(t, err)
		assert.ErrorIs(t, store.DeleteBook(ctx, book.ID), storage.ErrNotFound)
		assert.NoError(t, store.DeleteAuthor(ctx, author.ID), "the author is no longer referenced")
	})

	t.Run("find_all_books_in_insertion_order", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))
		first := GivenBook("Dune", author.ID, 1965)
		second := GivenBook("Dune Messiah", author.ID, 1969)
		third := GivenBook("Children of Dune", author.ID, 1976)
		for _, book := range []storage.BookRecord{first, second, third} {
			require.NoError(t, store.InsertBook(ctx, book))
		}

		// act
		books, err := store.FindAllBooks(ctx)

		// assert
		require.NoError(t, err)
		assert.Equal(t, []storage.BookRecord{first, second, third}, books)
	})

	t.Run("concurrent_update_and_delete_leave_a_consistent_state", func(t *testing.T) {
		// arrange
		ctx := ctxWithTimeout(t)
		store := newStore(t)
		author := GivenAuthor("Frank", "Herbert")
		require.NoError(t, store.InsertAuthor(ctx, author))
		book := GivenBook("Dune", author.ID, 1965)
		require.NoError(t, store.InsertBook(ctx, book))
		changed := book
		changed.Title = "Dune (revised)"

		var wg sync.WaitGroup
		var updateErr, deleteErr error

		// act
		wg.Add(2)
		go func() {
			defer wg.Done()
			updateErr = store.UpdateBook(ctx, changed)
		}()
		go func() {
			defer wg.Done()
			deleteErr = store.DeleteBook(ctx, book.ID)
		}()
		wg.Wait()

		// assert
		require.NoError(t, deleteErr, "the delete always finds the row, updated or not")
		if updateErr != nil {
			assert.ErrorIs(t, updateErr, storage.ErrNotFound, "a losing update sees not found")
		}
		_, findErr := store.FindBook(ctx, book.ID)
		assert.ErrorIs(t, findErr, storage.ErrNotFound)
	})
}

func ctxWithTimeout(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return ctx
}
