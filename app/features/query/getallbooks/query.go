package getallbooks

import "github.com/AntonStoeckl/bookapp-api/mediator"

const queryType = "GetAllBooks"

// Query represents the intent to list all books.
type Query struct{}

// MessageType returns the type identifier for this query.
func (q Query) MessageType() string {
	return queryType
}

// MessageKind marks this message as a query.
func (q Query) MessageKind() mediator.Kind {
	return mediator.KindQuery
}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}
