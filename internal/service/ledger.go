package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/store"
	"github.com/skyfare/bookingd/models"
)

// replaceAttempts bounds how many times an append retries after losing an
// optimistic-concurrency race before giving up with ErrBookingConflict.
const replaceAttempts = 3

// bookingLedger implements [BookingLedger] on top of a [store.DocumentStore],
// keeping each user's flight bookings inside their account document.
type bookingLedger struct {
	documents store.DocumentStore
	logger    *logger.Logger
}

// NewBookingLedger returns a [BookingLedger] backed by the given document
// store.
func NewBookingLedger(documents store.DocumentStore, logger *logger.Logger) BookingLedger {
	return &bookingLedger{
		documents: documents,
		logger:    logger,
	}
}

// Append atomically adds bookings to username's document via a
// read-modify-write cycle guarded by the document version.
//
// A lost race against a concurrent writer is retried from a fresh read, at
// most replaceAttempts times in total, so no booking is ever dropped or
// written twice. An empty batch fails with ErrNoBookingsProvided before
// any store access.
func (l *bookingLedger) Append(ctx context.Context, username string, bookings []models.FlightBooking) (models.UserRecord, error) {
	if len(bookings) == 0 {
		return models.UserRecord{}, ErrNoBookingsProvided
	}

	var lastErr error
	for attempt := 0; attempt < replaceAttempts; attempt++ {
		doc, version, err := l.documents.Get(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrKeyNotFound) {
				return models.UserRecord{}, ErrUserNotFound
			}
			return models.UserRecord{}, fmt.Errorf("ledger: reading account document: %w", err)
		}

		record, err := models.DecodeUserRecord(doc)
		if err != nil {
			return models.UserRecord{}, fmt.Errorf("ledger: decoding account document: %w", err)
		}

		record.Flights = append(record.Flights, bookings...)

		encoded, err := record.EncodeDocument()
		if err != nil {
			return models.UserRecord{}, fmt.Errorf("ledger: encoding account document: %w", err)
		}

		err = l.documents.Replace(ctx, username, encoded, version)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, store.ErrVersionMismatch) {
			if errors.Is(err, store.ErrKeyNotFound) {
				return models.UserRecord{}, ErrUserNotFound
			}
			return models.UserRecord{}, fmt.Errorf("ledger: replacing account document: %w", err)
		}

		lastErr = err
		l.logger.Debug().
			Str("username", username).
			Int("attempt", attempt+1).
			Msg("lost booking append race, retrying")
	}

	return models.UserRecord{}, fmt.Errorf("%w: %w", ErrBookingConflict, lastErr)
}

// List returns the bookings currently recorded for username. A missing
// account fails with ErrUserNotFound.
func (l *bookingLedger) List(ctx context.Context, username string) ([]models.FlightBooking, error) {
	doc, _, err := l.documents.Get(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ledger: reading account document: %w", err)
	}

	record, err := models.DecodeUserRecord(doc)
	if err != nil {
		return nil, fmt.Errorf("ledger: decoding account document: %w", err)
	}

	return record.Flights, nil
}
