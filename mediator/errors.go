package mediator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHandlerRegistered matches every *NoHandlerRegisteredError via errors.Is.
	ErrNoHandlerRegistered = errors.New("no handler registered")

	// ErrDuplicateRegistration matches every *DuplicateRegistrationError via errors.Is.
	ErrDuplicateRegistration = errors.New("duplicate handler registration")

	// ErrRegistryBuilt is returned when registering on a builder that was already built.
	ErrRegistryBuilt = errors.New("registry already built")

	// ErrEmptyMessageType is returned when a handler is registered for an empty message type.
	ErrEmptyMessageType = errors.New("message type must not be empty")

	// ErrNilHandler is returned when a nil handler is registered.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrNilRegistry is returned when a Dispatcher is created without a Registry.
	ErrNilRegistry = errors.New("registry must not be nil")

	// ErrNilMessage is returned when nil is dispatched.
	ErrNilMessage = errors.New("message must not be nil")

	// ErrMessageTypeMismatch is returned when a typed handler receives a message of a different Go type.
	ErrMessageTypeMismatch = errors.New("message does not match the registered handler type")
)

// DomainError is a business-rule violation raised by a handler, e.g. a not found entity
// or a reference to a nonexistent author. The Dispatcher converts it into Fail(Reason).
type DomainError struct {
	Reason string
}

// NewDomainError creates a DomainError with the given reason.
func NewDomainError(reason string) *DomainError {
	return &DomainError{Reason: reason}
}

func (e *DomainError) Error() string {
	return e.Reason
}

// NoHandlerRegisteredError is a configuration defect: a message type was dispatched that was never registered.
type NoHandlerRegisteredError struct {
	MessageType string
}

func (e *NoHandlerRegisteredError) Error() string {
	return fmt.Sprintf("%s for message type %q", ErrNoHandlerRegistered, e.MessageType)
}

// Is makes errors.Is(err, ErrNoHandlerRegistered) work.
func (e *NoHandlerRegisteredError) Is(target error) bool {
	return target == ErrNoHandlerRegistered
}

// DuplicateRegistrationError is a configuration defect: a message type was registered twice.
type DuplicateRegistrationError struct {
	MessageType string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s for message type %q", ErrDuplicateRegistration, e.MessageType)
}

// Is makes errors.Is(err, ErrDuplicateRegistration) work.
func (e *DuplicateRegistrationError) Is(target error) bool {
	return target == ErrDuplicateRegistration
}
