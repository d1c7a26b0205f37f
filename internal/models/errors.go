package models

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these
// with context via fmt.Errorf("...: %w", Err...); handlers map them to
// HTTP statuses with errors.Is.
var (
	// ErrValidation covers missing or malformed client input.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateIdentity means the email or mobile is already registered.
	ErrDuplicateIdentity = errors.New("identity already registered")

	// ErrInvalidCredentials is returned both for an unknown identifier and
	// for a wrong password, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled means the credentials were correct but the
	// account has been deactivated.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrNotFound covers absent resources and malformed resource ids.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is authenticated but not allowed to
	// act on the resource (ownership mismatch or wrong account type).
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated means the request carried no valid session.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUpstream covers blob-store or store-layer faults that are not
	// the caller's fault. Surfaced without internal detail.
	ErrUpstream = errors.New("upstream failure")
)
