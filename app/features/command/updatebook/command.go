package updatebook

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

const commandType = "UpdateBook"

// Command represents the intent to change a book.
type Command struct {
	BookID      uuid.UUID
	Title       string
	Genre       string
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
func BuildCommand(
	bookID uuid.UUID,
	title string,
	genre string,
	authorID uuid.UUID,
	releaseYear int,
) Command {

	return Command{
		BookID:      bookID,
		Title:       title,
		Genre:       genre,
		AuthorID:    authorID,
		ReleaseYear: releaseYear,
	}
}
