package service

import "errors"

// Sentinel errors forming the error taxonomy of the service core. Every
// operation returns either a success value or exactly one of these kinds
// (possibly wrapped with context); callers branch with [errors.Is] and map
// each kind to a transport status. No operation swallows an error and
// substitutes a default.
var (
	// ErrUserAlreadyExists is returned by signup when a record for the
	// username is already present. The existing record is never overwritten.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned by login on any credential
	// mismatch. Deliberately undifferentiated: an unknown username and a
	// wrong password are indistinguishable to the caller, so the endpoint
	// cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidDataProvided is returned when a required field (username,
	// password) is empty or structurally invalid.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrTokenInvalid is returned by token verification when the signature
	// does not validate or the token is malformed. Checked before any
	// claim is inspected.
	ErrTokenInvalid = errors.New("token signature is invalid")

	// ErrTokenExpired is returned by token verification when the signature
	// is valid but the expiry claim has passed.
	ErrTokenExpired = errors.New("token is expired")

	// ErrSubjectMismatch is returned by token verification when a valid,
	// unexpired token was issued for a different subject than the one the
	// operation targets.
	ErrSubjectMismatch = errors.New("token subject does not match")

	// ErrForbidden is returned by the façade when the authenticated
	// subject does not own the target booking record.
	ErrForbidden = errors.New("operation on another user's record is forbidden")

	// ErrNoBookingsProvided is returned when a booking request carries an
	// empty flight list. Detected before any store round trip.
	ErrNoBookingsProvided = errors.New("no flights in booking request")

	// ErrUserNotFound is returned when an operation targets a username
	// with no record in the document store.
	ErrUserNotFound = errors.New("no user was found")

	// ErrBookingConflict is returned when the booking ledger exhausts its
	// optimistic-concurrency retries; the request may be safely repeated.
	ErrBookingConflict = errors.New("booking conflict: concurrent updates exhausted retries")

	// ErrTokenCreationFailed is returned when signing a new token fails.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
