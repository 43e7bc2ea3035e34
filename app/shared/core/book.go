package core

import "github.com/google/uuid"

// DefaultGenre is assigned to every newly added Book.
const DefaultGenre = "Fiction"

// Book references its Author by id, it does not own it.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	AuthorID    uuid.UUID `json:"authorId"`
	ReleaseYear int       `json:"releaseYear"`
}
