package getallbooks

import (
	"context"

	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// BookService defines the interface needed by the QueryHandler.
type BookService interface {
	GetAll(ctx context.Context) ([]core.Book, error)
}

// QueryHandler lists books.
type QueryHandler struct {
	books BookService
}

// NewQueryHandler creates a new QueryHandler with the provided BookService dependency.
func NewQueryHandler(books BookService) QueryHandler {
	return QueryHandler{
		books: books,
	}
}

// Handle returns Ok([]core.Book).
func (h QueryHandler) Handle(ctx context.Context, _ Query) (mediator.Result, error) {
	books, err := h.books.GetAll(ctx)
	if err != nil {
		return mediator.Result{}, err
	}

	return mediator.Ok(books), nil
}
