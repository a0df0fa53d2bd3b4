package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordRequired   = fmt.Errorf("%w: password is required", ErrInvalidInput)
	ErrUsernameRequired   = fmt.Errorf("%w: username is required", ErrInvalidInput)
	ErrRoleNameRequired   = fmt.Errorf("%w: role name is required", ErrInvalidInput)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDeactivated = errors.New("this account has been deactivated")
	ErrAccountNotFound    = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("user with this username already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrDuplicateRoleName  = errors.New("role with this name already exists")
	ErrRoleInUse          = errors.New("role cannot be deleted because it is assigned to users")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSessionExpired     = fmt.Errorf("%w: session expired", ErrUnauthenticated)
	ErrForbidden          = errors.New("access forbidden")
	ErrStoreFailure       = errors.New("the operation could not be completed")
)

// StoreError wraps an unexpected persistence fault. Its message is generic;
// the cause is kept for logging through Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return ErrStoreFailure.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreFailure }
