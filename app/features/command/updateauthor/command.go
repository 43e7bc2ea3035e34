package updateauthor

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/mediator"
)

const commandType = "UpdateAuthor"

// Command represents the intent to rename an author.
type Command struct {
	AuthorID  uuid.UUID
	FirstName string
	LastName  string
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
func BuildCommand(authorID uuid.UUID, firstName string, lastName string) Command {
	return Command{
		AuthorID:  authorID,
		FirstName: firstName,
		LastName:  lastName,
	}
}
