package service

import (
	"context"
	"fmt"
	"time"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/models"
)

// bookingService is the application façade combining credential storage,
// token issuance, and the booking ledger behind [BookingService].
type bookingService struct {
	credentials CredentialStore
	tokens      TokenService
	ledger      BookingLedger
	accountTTL  time.Duration
	logger      *logger.Logger
}

// NewBookingService wires the collaborating services into a single
// [BookingService]. accountTTL is applied to newly created accounts
// (0 means accounts never expire).
func NewBookingService(credentials CredentialStore, tokens TokenService, ledger BookingLedger, accountTTL time.Duration, logger *logger.Logger) BookingService {
	return &bookingService{
		credentials: credentials,
		tokens:      tokens,
		ledger:      ledger,
		accountTTL:  accountTTL,
		logger:      logger,
	}
}

// Signup registers a new account and returns its API-safe view. The
// caller logs in separately to obtain a token.
func (s *bookingService) Signup(ctx context.Context, username, password string) (models.UserView, error) {
	if username == "" || password == "" {
		return models.UserView{}, ErrInvalidDataProvided
	}

	record, err := s.credentials.Create(ctx, username, password, s.accountTTL)
	if err != nil {
		return models.UserView{}, fmt.Errorf("signup %q: %w", username, err)
	}

	s.logger.Info().Str("username", username).Msg("account created")

	return record.View(), nil
}

// Login checks the supplied credentials and issues a bearer token for the
// account. Wrong password and unknown username both fail with
// ErrInvalidCredentials so callers cannot probe for registered usernames.
func (s *bookingService) Login(ctx context.Context, username, password string) (models.UserView, models.Token, error) {
	if username == "" || password == "" {
		return models.UserView{}, models.Token{}, ErrInvalidDataProvided
	}

	record, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		return models.UserView{}, models.Token{}, fmt.Errorf("login %q: %w", username, err)
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return models.UserView{}, models.Token{}, fmt.Errorf("login %q: %w", username, err)
	}

	return record.View(), token, nil
}

// BookFor appends bookings to target's record on behalf of actingSubject
// and returns the updated view. The acting subject must be the target
// user; anyone else gets ErrForbidden before the ledger is touched.
func (s *bookingService) BookFor(ctx context.Context, actingSubject, target string, bookings []models.FlightBooking) (models.UserView, error) {
	if actingSubject != target {
		return models.UserView{}, ErrForbidden
	}

	record, err := s.ledger.Append(ctx, target, bookings)
	if err != nil {
		return models.UserView{}, err
	}

	return record.View(), nil
}

// BookingsFor lists target's recorded bookings, subject to the same
// self-only access rule as BookFor.
func (s *bookingService) BookingsFor(ctx context.Context, actingSubject, target string) ([]models.FlightBooking, error) {
	if actingSubject != target {
		return nil, ErrForbidden
	}

	return s.ledger.List(ctx, target)
}
