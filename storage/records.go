package storage

import "github.com/google/uuid"

// AuthorRecord is the persisted form of an author.
type AuthorRecord struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
}

// BookRecord is the persisted form of a book. AuthorID references an AuthorRecord.
type BookRecord struct {
	ID          uuid.UUID
	Title       string
	Genre       string
	AuthorID    uuid.UUID
	ReleaseYear int
}
