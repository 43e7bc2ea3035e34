package mediator

import (
	"context"
	"fmt"
	"sort"
)

// RegistryBuilder collects handler registrations during process startup.
// It is not safe for concurrent use, registration is expected to happen from a single goroutine.
type RegistryBuilder struct {
	handlers map[string]HandlerFunc
	built    bool
}

// NewRegistryBuilder creates an empty RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		handlers: make(map[string]HandlerFunc),
	}
}

// Register binds a handler to a message type.
// It fails with a *DuplicateRegistrationError if the message type is already bound.
func (b *RegistryBuilder) Register(messageType string, handler HandlerFunc) error {
	if b.built {
		return ErrRegistryBuilt
	}

	if messageType == "" {
		return ErrEmptyMessageType
	}

	if handler == nil {
		return ErrNilHandler
	}

	if _, exists := b.handlers[messageType]; exists {
		return &DuplicateRegistrationError{MessageType: messageType}
	}

	b.handlers[messageType] = handler

	return nil
}

// Build freezes the registrations into an immutable Registry.
// The builder rejects further registrations afterward.
func (b *RegistryBuilder) Build() *Registry {
	b.built = true

	handlers := make(map[string]HandlerFunc, len(b.handlers))
	for messageType, handler := range b.handlers {
		handlers[messageType] = handler
	}

	return &Registry{handlers: handlers}
}

// Register binds a typed handler function to the message type of M.
// The message type is taken from the zero value of M, so M must not be a pointer type
// whose MessageType method dereferences the receiver.
func Register[M Message](b *RegistryBuilder, handle func(ctx context.Context, msg M) (Result, error)) error {
	if handle == nil {
		return ErrNilHandler
	}

	var zero M
	messageType := zero.MessageType()

	return b.Register(messageType, func(ctx context.Context, msg Message) (Result, error) {
		typed, ok := msg.(M)
		if !ok {
			return Result{}, fmt.Errorf("%w: expected %T, got %T", ErrMessageTypeMismatch, zero, msg)
		}

		return handle(ctx, typed)
	})
}

// Registry maps message types to handlers. It is read-only and safe for concurrent use.
type Registry struct {
	handlers map[string]HandlerFunc
}

// Resolve returns the handler bound to messageType or a *NoHandlerRegisteredError.
func (r *Registry) Resolve(messageType string) (HandlerFunc, error) {
	handler, exists := r.handlers[messageType]
	if !exists {
		return nil, &NoHandlerRegisteredError{MessageType: messageType}
	}

	return handler, nil
}

// MessageTypes returns all registered message types in lexical order.
func (r *Registry) MessageTypes() []string {
	types := make([]string, 0, len(r.handlers))
	for messageType := range r.handlers {
		types = append(types, messageType)
	}

	sort.Strings(types)

	return types
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.handlers)
}
