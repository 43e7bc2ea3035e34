package deleteauthor

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// AuthorService defines the interface needed by the CommandHandler.
type AuthorService interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommandHandler deletes authors.
type CommandHandler struct {
	authors AuthorService
}

// NewCommandHandler creates a new CommandHandler with the provided AuthorService dependency.
func NewCommandHandler(authors AuthorService) CommandHandler {
	return CommandHandler{
		authors: authors,
	}
}

// Handle deletes the author and returns Ok(nil).
func (h CommandHandler) Handle(ctx context.Context, command Command) (mediator.Result, error) {
	if err := h.authors.Delete(ctx, command.AuthorID); err != nil {
		return mediator.Result{}, err
	}

	return mediator.Ok(nil), nil
}
