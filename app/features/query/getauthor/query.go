package getauthor

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

const queryType = "GetAuthor"

// Query represents the intent to read one author.
type Query struct {
	AuthorID uuid.UUID
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
func BuildQuery(authorID uuid.UUID) Query {
	return Query{AuthorID: authorID}
}
