package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

// passthrough are the repository errors callers are allowed to see.
var passthrough = []error{
	domain.ErrAccountNotFound,
	domain.ErrRoleNotFound,
	domain.ErrDuplicateUsername,
	domain.ErrDuplicateRoleName,
	domain.ErrRoleInUse,
	domain.ErrStoreFailure,
}

// storeErr returns known domain errors unchanged and converts anything else
// into a *domain.StoreError after logging the cause.
func storeErr(log zerolog.Logger, op string, err error) error {
	for _, known := range passthrough {
		if errors.Is(err, known) {
			return err
		}
	}
	log.Error().Err(err).Str("op", op).Msg("store operation failed")
	return &domain.StoreError{Op: op, Err: err}
}
