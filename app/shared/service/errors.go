package service

import (
	"errors"

	"github.com/AntonStoeckl/bookapp-api/app/shared/core"
	"github.com/AntonStoeckl/bookapp-api/storage"
)

// toDomainError maps storage sentinels to domain errors and returns all other errors unchanged.
func toDomainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrAuthorNotFound):
		return core.ErrAuthorNotFound
	case errors.Is(err, storage.ErrAuthorReferenced):
		return core.ErrAuthorHasBooks
	case errors.Is(err, storage.ErrNotFound):
		return core.ErrNotFound
	case errors.Is(err, storage.ErrDuplicateID):
		return core.ErrDuplicateEntity
	default:
		return err
	}
}
