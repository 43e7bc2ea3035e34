package getbook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// BookService defines the interface needed by the QueryHandler.
type BookService interface {
	Get(ctx context.Context, id uuid.UUID) (core.Book, error)
}

// QueryHandler reads single books.
type QueryHandler struct {
	books BookService
}

// NewQueryHandler creates a new QueryHandler with the provided BookService dependency.
func NewQueryHandler(books BookService) QueryHandler {
	return QueryHandler{
		books: books,
	}
}

// Handle returns Ok(core.Book) or the "not found" domain error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (mediator.Result, error) {
	book, err := h.books.Get(ctx, query.BookID)
	if err != nil {
		return mediator.Result{}, err
	}

	return mediator.Ok(book), nil
}
