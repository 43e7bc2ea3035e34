package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/storage"
)

// AuthorStore defines the storage operations needed by the AuthorService.
type AuthorStore interface {
	InsertAuthor(ctx context.Context, author storage.AuthorRecord) error
	UpdateAuthor(ctx context.Context, author storage.AuthorRecord) error
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
	FindAuthor(ctx context.Context, id uuid.UUID) (storage.AuthorRecord, error)
	FindAllAuthors(ctx context.Context) ([]storage.AuthorRecord, error)
}

// AuthorService manages authors.
type AuthorService struct {
	store AuthorStore
	newID func() uuid.UUID
}

// NewAuthorService creates an AuthorService that persists to store.
func NewAuthorService(store AuthorStore) *AuthorService {
	return &AuthorService{store: store, newID: uuid.New}
}

// Add stores a new author and returns its freshly assigned id.
func (s *AuthorService) Add(ctx context.Context, firstName, lastName string) (uuid.UUID, error) {
	record := storage.AuthorRecord{ID: s.newID(), FirstName: firstName, LastName: lastName}

	if err := s.store.InsertAuthor(ctx, record); err != nil {
		return uuid.Nil, toDomainError(err)
	}

	return record.ID, nil
}

// Update overwrites the names of an existing author and returns its id.
func (s *AuthorService) Update(ctx context.Context, id uuid.UUID, firstName, lastName string) (uuid.UUID, error) {
	record := storage.AuthorRecord{ID: id, FirstName: firstName, LastName: lastName}

	if err := s.store.UpdateAuthor(ctx, record); err != nil {
		return uuid.Nil, toDomainError(err)
	}

	return id, nil
}

// Delete removes an author. Authors that books still reference cannot be deleted.
func (s *AuthorService) Delete(ctx context.Context, id uuid.UUID) error {
	return toDomainError(s.store.DeleteAuthor(ctx, id))
}

// Get returns a single author.
func (s *AuthorService) Get(ctx context.Context, id uuid.UUID) (core.Author, error) {
	record, err := s.store.FindAuthor(ctx, id)
	if err != nil {
		return core.Author{}, toDomainError(err)
	}

	return toAuthor(record), nil
}

// GetAll returns all authors in insertion order.
func (s *AuthorService) GetAll(ctx context.Context) ([]core.Author, error) {
	records, err := s.store.FindAllAuthors(ctx)
	if err != nil {
		return nil, toDomainError(err)
	}

	authors := make([]core.Author, 0, len(records))
	for _, record := range records {
		authors = append(authors, toAuthor(record))
	}

	return authors, nil
}

func toAuthor(record storage.AuthorRecord) core.Author {
	return core.Author{ID: record.ID, FirstName: record.FirstName, LastName: record.LastName}
}
