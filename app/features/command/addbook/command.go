package addbook

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

const commandType = "AddBook"

// Command represents the intent to add a book.
type Command struct {
	Title       string
	AuthorID    uuid.UUID
	ReleaseYear int
}

// MessageType returns the type identifier for this command.
func (c Command) MessageType() string {
	return commandType
}

// MessageKind marks this message as a command.
func (c Command) MessageKind() mediator.Kind {
	return mediator.KindCommand
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(title string, authorID uuid.UUID, releaseYear int) Command {
	return Command{
		Title:       title,
		AuthorID:    authorID,
		ReleaseYear: releaseYear,
	}
}
