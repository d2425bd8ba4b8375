package service

import (
	"context"
	"time"

	"github.com/skyfare/bookingd/models"
)

// CredentialStore owns hashed passwords keyed by username. It never
// returns or logs a cleartext password.
type CredentialStore interface {
	// Create derives a password hash and persists a new user record with
	// an empty flight list and the given document ttl (0 = no expiry).
	// Fails with ErrUserAlreadyExists when the username is taken.
	Create(ctx context.Context, username, password string, ttl time.Duration) (models.UserRecord, error)

	// Verify compares password against the stored hash. Both an unknown
	// username and a failed comparison yield ErrInvalidCredentials.
	Verify(ctx context.Context, username, password string) (models.UserRecord, error)
}

// TokenService issues and verifies signed, expiring bearer tokens bound to
// a subject. Tokens are stateless: nothing is persisted, and validity is
// recomputed from the signature and expiry claim on every call.
type TokenService interface {
	// Issue produces a signed token for subject, expiring after the
	// configured lifetime.
	Issue(subject string) (models.Token, error)

	// Verify validates tokenString in fixed order: signature, then
	// expiry, then subject. The corresponding failures are
	// ErrTokenInvalid, ErrTokenExpired, and ErrSubjectMismatch; an
	// unverified signature is never trusted for claim inspection.
	Verify(tokenString, expectedSubject string) (models.Token, error)
}

// BookingLedger mutates and reads the per-user flight list under
// optimistic concurrency.
type BookingLedger interface {
	// Append atomically appends bookings to the user's flight list,
	// retrying a bounded number of times on version conflicts. Fails with
	// ErrNoBookingsProvided on an empty batch (before any store call),
	// ErrUserNotFound for an absent record, and ErrBookingConflict when
	// retries are exhausted.
	Append(ctx context.Context, username string, bookings []models.FlightBooking) (models.UserRecord, error)

	// List returns the current flight list verbatim, or ErrUserNotFound.
	List(ctx context.Context, username string) ([]models.FlightBooking, error)
}

// BookingService is the façade the transport layer calls. Each operation
// composes the components above behind its own authorization gate.
type BookingService interface {
	// Signup registers a new account and returns its API-safe view.
	Signup(ctx context.Context, username, password string) (models.UserView, error)

	// Login verifies credentials and issues a bearer token for the
	// username on success.
	Login(ctx context.Context, username, password string) (models.UserView, models.Token, error)

	// BookFor appends bookings to target's record. Fails with
	// ErrForbidden unless actingSubject equals target.
	BookFor(ctx context.Context, actingSubject, target string, bookings []models.FlightBooking) (models.UserView, error)

	// BookingsFor returns target's flight list under the same gate as
	// BookFor.
	BookingsFor(ctx context.Context, actingSubject, target string) ([]models.FlightBooking, error)
}
