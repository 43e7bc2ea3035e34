package features

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookapp-api/app/features/command/addauthor"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/addbook"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/deleteauthor"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/deletebook"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/updateauthor"
	"github.com/AntonStoeckl/bookapp-api/app/features/command/updatebook"
	"github.com/AntonStoeckl/bookapp-api/app/features/query/getallauthors"
	"github.com/AntonStoeckl/bookapp-api/app/features/query/getallbooks"
	"github.com/AntonStoeckl/bookapp-api/app/features/query/getauthor"
	"github.com/AntonStoeckl/bookapp-api/app/features/query/getbook"
	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/mediator"
)

// AuthorService is the union of the author operations the handlers depend on.
type AuthorService interface {
	Add(ctx context.Context, firstName, lastName string) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, firstName, lastName string) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (core.Author, error)
	GetAll(ctx context.Context) ([]core.Author, error)
}

// BookService is the union of the book operations the handlers depend on.
type BookService interface {
	Add(ctx context.Context, title string, authorID uuid.UUID, releaseYear int) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, title, genre string, authorID uuid.UUID, releaseYear int) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (core.Book, error)
	GetAll(ctx context.Context) ([]core.Book, error)
}

// NewRegistry registers the fixed set of ten handlers and builds the immutable Registry.
// A failure here is a configuration defect and should abort startup.
func NewRegistry(authors AuthorService, books BookService) (*mediator.Registry, error) {
	builder := mediator.NewRegistryBuilder()

	registrations := []func(*mediator.RegistryBuilder) error{
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, addauthor.NewCommandHandler(authors).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, updateauthor.NewCommandHandler(authors).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, deleteauthor.NewCommandHandler(authors).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, getallauthors.NewQueryHandler(authors).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, getauthor.NewQueryHandler(authors).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, addbook.NewCommandHandler(books).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, updatebook.NewCommandHandler(books).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, deletebook.NewCommandHandler(books).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, getallbooks.NewQueryHandler(books).Handle)
		},
		func(b *mediator.RegistryBuilder) error {
			return mediator.Register(b, getbook.NewQueryHandler(books).Handle)
		},
	}

	for _, register := range registrations {
		if err := register(builder); err != nil {
			return nil, err
		}
	}

	return builder.Build(), nil
}
