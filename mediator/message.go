package mediator

import "context"

// Kind distinguishes mutation requests from read requests.
type Kind string

const (
	// KindCommand marks a Message that requests a state mutation.
	KindCommand Kind = "command"

	// KindQuery marks a Message that requests a read without mutation.
	KindQuery Kind = "query"
)

// Message is the contract for all commands and queries.
// MessageType is the identifier used for handler lookup and must be derivable from the zero value,
// so that typed handlers can be registered without an instance at hand.
type Message interface {
	MessageType() string
	MessageKind() Kind
}

// HandlerFunc processes exactly one Message and reports the outcome.
// A *DomainError return is converted into Fail by the Dispatcher, any other error is propagated.
type HandlerFunc func(ctx context.Context, msg Message) (Result, error)
