package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/app/shared/service"
	"github.com/AntonStoeckl/bookapp-api/storage"
	"github.com/AntonStoeckl/bookapp-api/storage/memoryengine"
)

var errStoreDown = errors.New("store down")

// failingStore fails every operation with errStoreDown.
type failingStore struct{}

func (failingStore) InsertAuthor(context.Context, storage.AuthorRecord) error { return errStoreDown }
func (failingStore) UpdateAuthor(context.Context, storage.AuthorRecord) error { return errStoreDown }
func (failingStore) DeleteAuthor(context.Context, uuid.UUID) error            { return errStoreDown }
func (failingStore) FindAuthor(context.Context, uuid.UUID) (storage.AuthorRecord, error) {
	return storage.AuthorRecord{}, errStoreDown
}
func (failingStore) FindAllAuthors(context.Context) ([]storage.AuthorRecord, error) {
	return nil, errStoreDown
}
func (failingStore) InsertBook(context.Context, storage.BookRecord) error { return errStoreDown }
func (failingStore) UpdateBook(context.Context, storage.BookRecord) error { return errStoreDown }
func (failingStore) DeleteBook(context.Context, uuid.UUID) error          { return errStoreDown }
func (failingStore) FindBook(context.Context, uuid.UUID) (storage.BookRecord, error) {
	return storage.BookRecord{}, errStoreDown
}
func (failingStore) FindAllBooks(context.Context) ([]storage.BookRecord, error) {
	return nil, errStoreDown
}

// duplicateIDStore rejects every insert with storage.ErrDuplicateID.
type duplicateIDStore struct{ failingStore }

func (duplicateIDStore) InsertAuthor(context.Context, storage.AuthorRecord) error {
	return storage.ErrDuplicateID
}
func (duplicateIDStore) InsertBook(context.Context, storage.BookRecord) error {
	return storage.ErrDuplicateID
}

func newServices() (*service.AuthorService, *service.BookService) {
	store := memoryengine.NewStore()
	return service.NewAuthorService(store), service.NewBookService(store)
}

func Test_AuthorService_AddThenGet_ReturnsSameNames(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors, _ := newServices()

	// act
	id, err := authors.Add(ctx, "Frank", "Herbert")

	// assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	author, getErr := authors.Get(ctx, id)
	require.NoError(t, getErr)
	assert.Equal(t, core.Author{ID: id, FirstName: "Frank", LastName: "Herbert"}, author)
}

func Test_AuthorService_Update_IsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors, _ := newServices()
	id, err := authors.Add(ctx, "Frank", "Herbert")
	require.NoError(t, err)

	// act
	firstID, firstErr := authors.Update(ctx, id, "Franklin", "Herbert")
	first, _ := authors.Get(ctx, id)
	secondID, secondErr := authors.Update(ctx, id, "Franklin", "Herbert")
	second, _ := authors.Get(ctx, id)

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Equal(t, id, firstID)
	assert.Equal(t, id, secondID)
	assert.Equal(t, first, second)
	assert.Equal(t, "Franklin", second.FirstName)
}

func Test_AuthorService_UnknownID_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	authors, _ := newServices()
	unknownID := uuid.New()

	_, updateErr := authors.Update(ctx, unknownID, "A", "B")
	deleteErr := authors.Delete(ctx, unknownID)
	_, getErr := authors.Get(ctx, unknownID)

	assert.ErrorIs(t, updateErr, core.ErrNotFound)
	assert.ErrorIs(t, deleteErr, core.ErrNotFound)
	assert.ErrorIs(t, getErr, core.ErrNotFound)
}

func Test_AuthorService_DeleteThenGet_ReturnsNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors, _ := newServices()
	id, err := authors.Add(ctx, "Frank", "Herbert")
	require.NoError(t, err)

	// act
	deleteErr := authors.Delete(ctx, id)
	_, getErr := authors.Get(ctx, id)

	// assert
	require.NoError(t, deleteErr)
	assert.ErrorIs(t, getErr, core.ErrNotFound)
}

func Test_AuthorService_DeleteAuthorWithBooks_ReturnsAuthorHasBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors, books := newServices()
	authorID, err := authors.Add(ctx, "Frank", "Herbert")
	require.NoError(t, err)
	_, err = books.Add(ctx, "Dune", authorID, 1965)
	require.NoError(t, err)

	// act
	err = authors.Delete(ctx, authorID)

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorHasBooks)
	_, getErr := authors.Get(ctx, authorID)
	assert.NoError(t, getErr)
}

func Test_AuthorService_GetAll_ReturnsInsertionOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors, _ := newServices()
	firstID, _ := authors.Add(ctx, "Zadie", "Smith")
	secondID, _ := authors.Add(ctx, "Anne", "Carson")

	// act
	all, err := authors.GetAll(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, firstID, all[0].ID)
	assert.Equal(t, secondID, all[1].ID)
}

func Test_BookService_Add_AssignsDefaultGenre(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors, books := newServices()
	authorID, err := authors.Add(ctx, "Frank", "Herbert")
	require.NoError(t, err)

	// act
	id, err := books.Add(ctx, "Dune", authorID, 1965)

	// assert
	require.NoError(t, err)
	book, getErr := books.Get(ctx, id)
	require.NoError(t, getErr)
	assert.Equal(t, core.Book{
		ID:          id,
		Title:       "Dune",
		Genre:       core.DefaultGenre,
		AuthorID:    authorID,
		ReleaseYear: 1965,
	}, book)
}

func Test_BookService_AddWithUnknownAuthor_PersistsNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	_, books := newServices()

	// act
	id, err := books.Add(ctx, "Dune", uuid.New(), 1965)

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorNotFound)
	assert.Equal(t, uuid.Nil, id)
	all, getAllErr := books.GetAll(ctx)
	require.NoError(t, getAllErr)
	assert.Empty(t, all)
}

func Test_BookService_UpdateWithUnknownAuthor_LeavesBookUnchanged(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors, books := newServices()
	authorID, _ := authors.Add(ctx, "Frank", "Herbert")
	id, err := books.Add(ctx, "Dune", authorID, 1965)
	require.NoError(t, err)

	// act
	_, err = books.Update(ctx, id, "Dune Messiah", "Science Fiction", uuid.New(), 1969)

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorNotFound)
	book, _ := books.Get(ctx, id)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, core.DefaultGenre, book.Genre)
}

func Test_BookService_Update_OverwritesAllFields(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors, books := newServices()
	firstAuthorID, _ := authors.Add(ctx, "Frank", "Herbert")
	secondAuthorID, _ := authors.Add(ctx, "Brian", "Herbert")
	id, err := books.Add(ctx, "Dune", firstAuthorID, 1965)
	require.NoError(t, err)

	// act
	updatedID, err := books.Update(ctx, id, "Dune: House Atreides", "Science Fiction", secondAuthorID, 1999)

	// assert
	require.NoError(t, err)
	assert.Equal(t, id, updatedID)
	book, _ := books.Get(ctx, id)
	assert.Equal(t, core.Book{
		ID:          id,
		Title:       "Dune: House Atreides",
		Genre:       "Science Fiction",
		AuthorID:    secondAuthorID,
		ReleaseYear: 1999,
	}, book)
}

func Test_BookService_UnknownID_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	authors, books := newServices()
	authorID, _ := authors.Add(ctx, "Frank", "Herbert")
	unknownID := uuid.New()

	_, updateErr := books.Update(ctx, unknownID, "T", "G", authorID, 2000)
	deleteErr := books.Delete(ctx, unknownID)
	_, getErr := books.Get(ctx, unknownID)

	assert.ErrorIs(t, updateErr, core.ErrNotFound)
	assert.ErrorIs(t, deleteErr, core.ErrNotFound)
	assert.ErrorIs(t, getErr, core.ErrNotFound)
}

func Test_Services_StoreFailure_PropagatesUnchanged(t *testing.T) {
	ctx := context.Background()
	authors := service.NewAuthorService(failingStore{})
	books := service.NewBookService(failingStore{})

	_, err := authors.Add(ctx, "A", "B")
	assert.ErrorIs(t, err, errStoreDown)
	_, err = authors.GetAll(ctx)
	assert.ErrorIs(t, err, errStoreDown)
	err = authors.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, errStoreDown)
	_, err = books.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, errStoreDown)
	_, err = books.GetAll(ctx)
	assert.ErrorIs(t, err, errStoreDown)
}

func Test_Services_DuplicateID_ReturnsDuplicateEntity(t *testing.T) {
	// arrange
	ctx := context.Background()
	authors := service.NewAuthorService(duplicateIDStore{})
	books := service.NewBookService(duplicateIDStore{})

	// act
	_, authorErr := authors.Add(ctx, "Frank", "Herbert")
	_, bookErr := books.Add(ctx, "Dune", uuid.New(), 1965)

	// assert
	assert.ErrorIs(t, authorErr, core.ErrDuplicateEntity)
	assert.ErrorIs(t, bookErr, core.ErrDuplicateEntity)
	assert.EqualError(t, authorErr, "duplicate entity")
}
