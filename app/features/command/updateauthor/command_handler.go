package updateauthor

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// AuthorService defines the interface needed by the CommandHandler.
type AuthorService interface {
	Update(ctx context.Context, id uuid.UUID, firstName, lastName string) (uuid.UUID, error)
}

// CommandHandler updates authors.
type CommandHandler struct {
	authors AuthorService
}

// NewCommandHandler creates a new CommandHandler with the provided AuthorService dependency.
func NewCommandHandler(authors AuthorService) CommandHandler {
	return CommandHandler{
		authors: authors,
	}
}

// Handle updates the author and returns Ok(id).
func (h CommandHandler) Handle(ctx context.Context, command Command) (mediator.Result, error) {
	id, err := h.authors.Update(ctx, command.AuthorID, command.FirstName, command.LastName)
	if err != nil {
		return mediator.Result{}, err
	}

	return mediator.Ok(id), nil
}
