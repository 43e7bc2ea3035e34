package core

import "github.com/AntonStoeckl/bookapp-api/mediator"

var (
	// ErrNotFound is reported when the addressed author or book does not exist.
	ErrNotFound = mediator.NewDomainError("not found")

	// ErrAuthorNotFound is reported when a book references an author that does not exist.
	ErrAuthorNotFound = mediator.NewDomainError("author not found")

	// ErrAuthorHasBooks is reported when deleting an author that books still reference.
	ErrAuthorHasBooks = mediator.NewDomainError("author has books")

	// ErrDuplicateEntity is reported when an entity with the same id already exists.
	ErrDuplicateEntity = mediator.NewDomainError("duplicate entity")
)
