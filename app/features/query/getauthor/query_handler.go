package getauthor

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// AuthorService defines the interface needed by the QueryHandler.
type AuthorService interface {
	Get(ctx context.Context, id uuid.UUID) (core.Author, error)
}

// QueryHandler reads single authors.
type QueryHandler struct {
	authors AuthorService
}

// NewQueryHandler creates a new QueryHandler with the provided AuthorService dependency.
func NewQueryHandler(authors AuthorService) QueryHandler {
	return QueryHandler{
		authors: authors,
	}
}

// Handle returns Ok(core.Author) or the "not found" domain error.
func (h QueryHandler) Handle(ctx context.Context, query Query) (mediator.Result, error) {
	author, err := h.authors.Get(ctx, query.AuthorID)
	if err != nil {
		return mediator.Result{}, err
	}

	return mediator.Ok(author), nil
}
