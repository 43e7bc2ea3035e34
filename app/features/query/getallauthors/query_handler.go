package getallauthors

import (
	"context"

	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// AuthorService defines the interface needed by the QueryHandler.
type AuthorService interface {
	GetAll(ctx context.Context) ([]core.Author, error)
}

// QueryHandler lists authors.
type QueryHandler struct {
	authors AuthorService
}

// NewQueryHandler creates a new QueryHandler with the provided AuthorService dependency.
func NewQueryHandler(authors AuthorService) QueryHandler {
	return QueryHandler{
		authors: authors,
	}
}

// Handle returns Ok([]core.Author).
func (h QueryHandler) Handle(ctx context.Context, _ Query) (mediator.Result, error) {
	authors, err := h.authors.GetAll(ctx)
	if err != nil {
		return mediator.Result{}, err
	}

	return mediator.Ok(authors), nil
}
