package addauthor

import "github.com/AntonStoeckl/bookapp-api/mediator"

const commandType = "AddAuthor"

// Command represents the intent to add an author.
type Command struct {
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
func BuildCommand(firstName string, lastName string) Command {
	return Command{
		FirstName: firstName,
		LastName:  lastName,
	}
}
