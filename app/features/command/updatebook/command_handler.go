package updatebook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// BookService defines the interface needed by the CommandHandler.
type BookService interface {
	Update(
		ctx context.Context,
		id uuid.UUID,
		title string,
		genre string,
		authorID uuid.UUID,
		releaseYear int,
	) (uuid.UUID, error)
}

// CommandHandler updates books.
type CommandHandler struct {
	books BookService
}

// NewCommandHandler creates a new CommandHandler with the provided BookService dependency.
func NewCommandHandler(books BookService) CommandHandler {
	return CommandHandler{
		books: books,
	}
}

// Handle updates the book and returns Ok(id).
func (h CommandHandler) Handle(ctx context.Context, command Command) (mediator.Result, error) {
	id, err := h.books.Update(
		ctx,
		command.BookID,
		command.Title,
		command.Genre,
		command.AuthorID,
		command.ReleaseYear,
	)
	if err != nil {
		return mediator.Result{}, err
	}

	return mediator.Ok(id), nil
}
