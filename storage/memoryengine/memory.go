package memoryengine

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/storage"
)

type authorEntry struct {
	seq    uint64
	record storage.AuthorRecord
}

type bookEntry struct {
	seq    uint64
	record storage.BookRecord
}

// Store keeps authors and books in memory.
type Store struct {
	mu      sync.RWMutex
	seq     uint64
	authors map[uuid.UUID]authorEntry
	books   map[uuid.UUID]bookEntry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		authors: make(map[uuid.UUID]authorEntry),
		books:   make(map[uuid.UUID]bookEntry),
	}
}

// Ping always succeeds unless the context is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// InsertAuthor stores a new author.
func (s *Store) InsertAuthor(ctx context.Context, author storage.AuthorRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.authors[author.ID]; exists {
		return storage.ErrDuplicateID
	}

	s.seq++
	s.authors[author.ID] = authorEntry{seq: s.seq, record: author}

	return nil
}

// UpdateAuthor overwrites the names of an existing author.
func (s *Store) UpdateAuthor(ctx context.Context, author storage.AuthorRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.authors[author.ID]
	if !exists {
		return storage.ErrNotFound
	}

	entry.record = author
	s.authors[author.ID] = entry

	return nil
}

// DeleteAuthor removes an author unless books still reference it.
func (s *Store) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.authors[id]; !exists {
		return storage.ErrNotFound
	}

	for _, book := range s.books {
		if book.record.AuthorID == id {
			return storage.ErrAuthorReferenced
		}
	}

	delete(s.authors, id)

	return nil
}

// FindAuthor loads a single author or fails with storage.ErrNotFound.
func (s *Store) FindAuthor(ctx context.Context, id uuid.UUID) (storage.AuthorRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.AuthorRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.authors[id]
	if !exists {
		return storage.AuthorRecord{}, storage.ErrNotFound
	}

	return entry.record, nil
}

// FindAllAuthors loads all authors in insertion order.
func (s *Store) FindAllAuthors(ctx context.Context) ([]storage.AuthorRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := make([]authorEntry, 0, len(s.authors))
	for _, entry := range s.authors {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	authors := make([]storage.AuthorRecord, 0, len(entries))
	for _, entry := range entries {
		authors = append(authors, entry.record)
	}

	return authors, nil
}

// InsertBook stores a new book. The author must exist.
func (s *Store) InsertBook(ctx context.Context, book storage.BookRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.authors[book.AuthorID]; !exists {
		return storage.ErrAuthorNotFound
	}

	if _, exists := s.books[book.ID]; exists {
		return storage.ErrDuplicateID
	}

	s.seq++
	s.books[book.ID] = bookEntry{seq: s.seq, record: book}

	return nil
}

// UpdateBook overwrites all fields of an existing book.
// A missing book is reported before a missing author, like the postgres engine does.
func (s *Store) UpdateBook(ctx context.Context, book storage.BookRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.books[book.ID]
	if !exists {
		return storage.ErrNotFound
	}

	if _, authorExists := s.authors[book.AuthorID]; !authorExists {
		return storage.ErrAuthorNotFound
	}

	entry.record = book
	s.books[book.ID] = entry

	return nil
}

// DeleteBook removes a book or fails with storage.ErrNotFound.
func (s *Store) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.books[id]; !exists {
		return storage.ErrNotFound
	}

	delete(s.books, id)

	return nil
}

// FindBook loads a single book or fails with storage.ErrNotFound.
func (s *Store) FindBook(ctx context.Context, id uuid.UUID) (storage.BookRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.BookRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.books[id]
	if !exists {
		return storage.BookRecord{}, storage.ErrNotFound
	}

	return entry.record, nil
}

// FindAllBooks loads all books in insertion order.
func (s *Store) FindAllBooks(ctx context.Context) ([]storage.BookRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := make([]bookEntry, 0, len(s.books))
	for _, entry := range s.books {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	books := make([]storage.BookRecord, 0, len(entries))
	for _, entry := range entries {
		books = append(books, entry.record)
	}

	return books, nil
}
