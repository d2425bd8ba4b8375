package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/store"
	"github.com/skyfare/bookingd/models"
)

// credentialStore is the concrete implementation of [CredentialStore].
// Passwords are hashed with bcrypt at the default cost — a deliberately
// slow, salted one-way derivation — and compared with bcrypt's own
// constant-time comparison. The underlying user record lives in the
// document store; this component never caches it across requests.
type credentialStore struct {
	documents store.DocumentStore
	logger    *logger.Logger
}

// NewCredentialStore constructs a [CredentialStore] over the given
// document store.
//
// The returned store is safe for concurrent use; all state is read-only
// after construction.
func NewCredentialStore(documents store.DocumentStore, logger *logger.Logger) CredentialStore {
	return &credentialStore{
		documents: documents,
		logger:    logger,
	}
}

// Create registers a new user record with an empty flight list.
//
// Returns the persisted record or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - ErrUserAlreadyExists if the username is taken; the existing record
//     is left untouched.
//   - A wrapped storage error if the document store call fails.
func (c *credentialStore) Create(ctx context.Context, username, password string, ttl time.Duration) (models.UserRecord, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid signup data provided")
		return models.UserRecord{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password hashing failed")
		return models.UserRecord{}, fmt.Errorf("password hashing failed: %w", err)
	}

	record := models.UserRecord{
		Username:     username,
		PasswordHash: string(hash),
		Flights:      []models.FlightBooking{},
		CreatedAt:    time.Now().UTC(),
	}

	doc, err := record.EncodeDocument()
	if err != nil {
		log.Err(err).Str("username", username).Msg("user record encoding failed")
		return models.UserRecord{}, fmt.Errorf("user record encoding failed: %w", err)
	}

	if err := c.documents.Insert(ctx, username, doc, ttl); err != nil {
		if errors.Is(err, store.ErrKeyAlreadyExists) {
			log.Error().Str("username", username).Msg("signup for existing username")
			return models.UserRecord{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("username", username).Msg("user record insert failed")
		return models.UserRecord{}, fmt.Errorf("user record insert failed: %w", err)
	}

	return record, nil
}

// Verify authenticates username against password.
//
// An absent record and a failed hash comparison are both reported as
// ErrInvalidCredentials so the caller cannot distinguish them; storage
// failures are surfaced distinctly as wrapped errors.
func (c *credentialStore) Verify(ctx context.Context, username, password string) (models.UserRecord, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.UserRecord{}, ErrInvalidDataProvided
	}

	doc, _, err := c.documents.Get(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			log.Error().Str("username", username).Msg("login for unknown username")
			return models.UserRecord{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user record lookup failed")
		return models.UserRecord{}, fmt.Errorf("user record lookup failed: %w", err)
	}

	record, err := models.DecodeUserRecord(doc)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user record decoding failed")
		return models.UserRecord{}, fmt.Errorf("user record decoding failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		log.Error().Str("username", username).Msg("wrong password")
		return models.UserRecord{}, ErrInvalidCredentials
	}

	return record, nil
}
