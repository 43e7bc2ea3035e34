package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/storage"
)

// BookStore defines the storage operations needed by the BookService.
type BookStore interface {
	InsertBook(ctx context.Context, book storage.BookRecord) error
	UpdateBook(ctx context.Context, book storage.BookRecord) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
	FindBook(ctx context.Context, id uuid.UUID) (storage.BookRecord, error)
	FindAllBooks(ctx context.Context) ([]storage.BookRecord, error)
}

// BookService manages books.
type BookService struct {
	store BookStore
	newID func() uuid.UUID
}

// NewBookService creates a BookService that persists to store.
func NewBookService(store BookStore) *BookService {
	return &BookService{store: store, newID: uuid.New}
}

// Add stores a new book with the DefaultGenre and returns its freshly assigned id.
// The author must exist.
func (s *BookService) Add(ctx context.Context, title string, authorID uuid.UUID, releaseYear int) (uuid.UUID, error) {
	record := storage.BookRecord{
		ID:          s.newID(),
		Title:       title,
		Genre:       core.DefaultGenre,
		AuthorID:    authorID,
		ReleaseYear: releaseYear,
	}

	if err := s.store.InsertBook(ctx, record); err != nil {
		return uuid.Nil, toDomainError(err)
	}

	return record.ID, nil
}

// Update overwrites all mutable fields of an existing book and returns its id.
// A missing book is reported before a missing author.
func (s *BookService) Update(
	ctx context.Context,
	id uuid.UUID,
	title string,
	genre string,
	authorID uuid.UUID,
	releaseYear int,
) (uuid.UUID, error) {
	record := storage.BookRecord{
		ID:          id,
		Title:       title,
		Genre:       genre,
		AuthorID:    authorID,
		ReleaseYear: releaseYear,
	}

	if err := s.store.UpdateBook(ctx, record); err != nil {
		return uuid.Nil, toDomainError(err)
	}

	return id, nil
}

// Delete removes a book.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	return toDomainError(s.store.DeleteBook(ctx, id))
}

// Get returns a single book.
func (s *BookService) Get(ctx context.Context, id uuid.UUID) (core.Book, error) {
	record, err := s.store.FindBook(ctx, id)
	if err != nil {
		return core.Book{}, toDomainError(err)
	}

	return toBook(record), nil
}

// GetAll returns all books in insertion order.
func (s *BookService) GetAll(ctx context.Context) ([]core.Book, error) {
	records, err := s.store.FindAllBooks(ctx)
	if err != nil {
		return nil, toDomainError(err)
	}

	books := make([]core.Book, 0, len(records))
	for _, record := range records {
		books = append(books, toBook(record))
	}

	return books, nil
}

func toBook(record storage.BookRecord) core.Book {
	return core.Book{
		ID:          record.ID,
		Title:       record.Title,
		Genre:       record.Genre,
		AuthorID:    record.AuthorID,
		ReleaseYear: record.ReleaseYear,
	}
}
