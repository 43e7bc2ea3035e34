package deletebook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// BookService defines the interface needed by the CommandHandler.
type BookService interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommandHandler deletes books.
type CommandHandler struct {
	books BookService
}

// NewCommandHandler creates a new CommandHandler with the provided BookService dependency.
func NewCommandHandler(books BookService) CommandHandler {
	return CommandHandler{
		books: books,
	}
}

// Handle deletes the book and returns Ok(nil).
func (h CommandHandler) Handle(ctx context.Context, command Command) (mediator.Result, error) {
	if err := h.books.Delete(ctx, command.BookID); err != nil {
		return mediator.Result{}, err
	}

	return mediator.Ok(nil), nil
}
