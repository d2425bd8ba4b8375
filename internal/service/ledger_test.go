package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/mock"
	"github.com/skyfare/bookingd/internal/store"
	"github.com/skyfare/bookingd/models"
)

func booking(flight string) models.FlightBooking {
	return models.FlightBooking(fmt.Sprintf(`{"flight":%q}`, flight))
}

// seedAccount inserts a user document with an empty flight list directly
// into the store, bypassing the credential layer.
func seedAccount(t *testing.T, documents store.DocumentStore, username string) {
	t.Helper()

	record := models.UserRecord{
		Username:     username,
		PasswordHash: "$2a$10$irrelevant",
		Flights:      []models.FlightBooking{},
	}
	doc, err := record.EncodeDocument()
	require.NoError(t, err)
	require.NoError(t, documents.Insert(context.Background(), username, doc, 0))
}

func TestBookingLedger_Append_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	documents := store.NewMemoryDocumentStore(logger.Nop())
	ledger := NewBookingLedger(documents, logger.Nop())
	seedAccount(t, documents, "alice")

	_, err := ledger.Append(ctx, "alice", []models.FlightBooking{booking("SFO-JFK")})
	require.NoError(t, err)

	record, err := ledger.Append(ctx, "alice", []models.FlightBooking{booking("JFK-LHR"), booking("LHR-SFO")})
	require.NoError(t, err)
	require.Len(t, record.Flights, 3)

	flights, err := ledger.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, flights, 3)
	assert.JSONEq(t, `{"flight":"SFO-JFK"}`, string(flights[0]))
	assert.JSONEq(t, `{"flight":"JFK-LHR"}`, string(flights[1]))
	assert.JSONEq(t, `{"flight":"LHR-SFO"}`, string(flights[2]))
}

func TestBookingLedger_Append_EmptyBatchSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No EXPECT calls: any store access fails the test.
	documents := mock.NewMockDocumentStore(ctrl)
	ledger := NewBookingLedger(documents, logger.Nop())

	_, err := ledger.Append(context.Background(), "alice", nil)
	assert.ErrorIs(t, err, ErrNoBookingsProvided)

	_, err = ledger.Append(context.Background(), "alice", []models.FlightBooking{})
	assert.ErrorIs(t, err, ErrNoBookingsProvided)
}

func TestBookingLedger_Append_UnknownUser(t *testing.T) {
	ledger := NewBookingLedger(store.NewMemoryDocumentStore(logger.Nop()), logger.Nop())

	_, err := ledger.Append(context.Background(), "nobody", []models.FlightBooking{booking("SFO-JFK")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBookingLedger_List_UnknownUser(t *testing.T) {
	ledger := NewBookingLedger(store.NewMemoryDocumentStore(logger.Nop()), logger.Nop())

	_, err := ledger.List(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// TestBookingLedger_Append_RetriesOnVersionConflict verifies the
// read-append-write cycle restarts from a fresh read after losing a race.
func TestBookingLedger_Append_RetriesOnVersionConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	record := models.UserRecord{Username: "alice", Flights: []models.FlightBooking{}}
	doc, err := record.EncodeDocument()
	require.NoError(t, err)

	documents := mock.NewMockDocumentStore(ctrl)
	gomock.InOrder(
		documents.EXPECT().Get(gomock.Any(), "alice").Return(json.RawMessage(doc), store.Version(1), nil),
		documents.EXPECT().Replace(gomock.Any(), "alice", gomock.Any(), store.Version(1)).Return(store.ErrVersionMismatch),
		documents.EXPECT().Get(gomock.Any(), "alice").Return(json.RawMessage(doc), store.Version(2), nil),
		documents.EXPECT().Replace(gomock.Any(), "alice", gomock.Any(), store.Version(2)).Return(nil),
	)

	ledger := NewBookingLedger(documents, logger.Nop())

	updated, err := ledger.Append(ctx, "alice", []models.FlightBooking{booking("SFO-JFK")})
	require.NoError(t, err)
	assert.Len(t, updated.Flights, 1)
}

func TestBookingLedger_Append_ConflictAfterRetriesExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	record := models.UserRecord{Username: "alice", Flights: []models.FlightBooking{}}
	doc, err := record.EncodeDocument()
	require.NoError(t, err)

	documents := mock.NewMockDocumentStore(ctrl)
	documents.EXPECT().Get(gomock.Any(), "alice").
		Return(json.RawMessage(doc), store.Version(1), nil).
		Times(replaceAttempts)
	documents.EXPECT().Replace(gomock.Any(), "alice", gomock.Any(), store.Version(1)).
		Return(store.ErrVersionMismatch).
		Times(replaceAttempts)

	ledger := NewBookingLedger(documents, logger.Nop())

	_, err = ledger.Append(ctx, "alice", []models.FlightBooking{booking("SFO-JFK")})
	assert.ErrorIs(t, err, ErrBookingConflict)
}

// TestBookingLedger_Append_Concurrent races many appends for the same user
// against the in-memory store. Every call must either succeed or fail with
// ErrBookingConflict, and no successful booking may be lost or duplicated.
func TestBookingLedger_Append_Concurrent(t *testing.T) {
	const writers = 32

	ctx := context.Background()
	documents := store.NewMemoryDocumentStore(logger.Nop())
	ledger := NewBookingLedger(documents, logger.Nop())
	seedAccount(t, documents, "alice")

	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Append(ctx, "alice", []models.FlightBooking{booking(fmt.Sprintf("flight-%d", i))})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrBookingConflict, "writer %d failed with unexpected error", i)
	}

	flights, err := ledger.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, flights, succeeded)

	// Every booking present exactly once, none duplicated.
	seen := make(map[string]bool, len(flights))
	for _, f := range flights {
		require.False(t, seen[string(f)], "duplicate booking %s", f)
		seen[string(f)] = true
	}
}
