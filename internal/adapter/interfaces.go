// Package adapter provides a client for the booking service's REST API.
//
// The primary abstraction is [BookingClient], which decouples callers
// (integration tooling, smoke tests, sibling services) from the HTTP
// protocol. The package ships a resty-based implementation
// ([NewHTTPBookingClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/skyfare/bookingd/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/booking_client_mock.go -package=mock

// BookingClient defines transport-agnostic communication with the booking
// server. Implementations are responsible for serialisation, bearer-token
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type BookingClient interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after
	// a successful Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or an
	// empty string if no token has been set yet.
	Token() string

	// Signup registers a new account. Returns [ErrConflict] (wrapped) when
	// the username is already taken.
	Signup(ctx context.Context, username, password string) (models.UserView, error)

	// Login authenticates and stores the returned bearer token via
	// SetToken. Returns [ErrUnauthorized] (wrapped) on bad credentials.
	Login(ctx context.Context, username, password string) (models.UserView, error)

	// Book appends flights to username's record. Requires a prior Login
	// for the same user; returns [ErrForbidden] (wrapped) otherwise.
	Book(ctx context.Context, username string, flights []models.FlightBooking) (models.UserView, error)

	// Bookings lists username's recorded flights under the same
	// authorization rule as Book.
	Bookings(ctx context.Context, username string) ([]models.FlightBooking, error)
}
