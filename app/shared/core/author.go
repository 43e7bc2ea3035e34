package core

import "github.com/google/uuid"

// Author is a person who wrote one or more books.
type Author struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}
