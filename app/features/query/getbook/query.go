package getbook

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

const queryType = "GetBook"

// Query represents the intent to read one book.
type Query struct {
	BookID uuid.UUID
}

// MessageType returns the type identifier for this query.
func (q Query) MessageType() string {
	return queryType
}

// MessageKind marks this message as a query.
func (q Query) MessageKind() mediator.Kind {
	return mediator.KindQuery
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(bookID uuid.UUID) Query {
	return Query{BookID: bookID}
}
