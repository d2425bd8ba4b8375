package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/skyfare/bookingd/internal/logger"
	"github.com/skyfare/bookingd/internal/mock"
	"github.com/skyfare/bookingd/internal/store"
)

func newTestCredentialStore(t *testing.T) CredentialStore {
	t.Helper()
	return NewCredentialStore(store.NewMemoryDocumentStore(logger.Nop()), logger.Nop())
}

func TestCredentialStore_CreateThenVerify(t *testing.T) {
	ctx := context.Background()
	creds := newTestCredentialStore(t)

	created, err := creds.Create(ctx, "alice", "s3cret", 0)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "s3cret", created.PasswordHash)
	assert.Empty(t, created.Flights)
	assert.NotNil(t, created.Flights)

	verified, err := creds.Verify(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.Username, verified.Username)
	assert.Equal(t, created.PasswordHash, verified.PasswordHash)
}

func TestCredentialStore_Create_PasswordIsHashed(t *testing.T) {
	ctx := context.Background()
	creds := newTestCredentialStore(t)

	record, err := creds.Create(ctx, "alice", "s3cret", 0)
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte("s3cret")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte("wrong")))
}

func TestCredentialStore_Create_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	creds := newTestCredentialStore(t)

	first, err := creds.Create(ctx, "alice", "original", 0)
	require.NoError(t, err)

	_, err = creds.Create(ctx, "alice", "other-password", 0)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// The original credential still authenticates.
	verified, err := creds.Verify(ctx, "alice", "original")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, verified.PasswordHash)
}

func TestCredentialStore_Create_InvalidInput(t *testing.T) {
	ctx := context.Background()
	creds := newTestCredentialStore(t)

	_, err := creds.Create(ctx, "", "s3cret", 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = creds.Create(ctx, "alice", "", 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCredentialStore_Verify_UnknownUserAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	creds := newTestCredentialStore(t)

	_, err := creds.Create(ctx, "alice", "s3cret", 0)
	require.NoError(t, err)

	// Unknown username and wrong password are indistinguishable.
	_, unknownErr := creds.Verify(ctx, "nobody", "s3cret")
	_, wrongErr := creds.Verify(ctx, "alice", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
}

func TestCredentialStore_Create_PassesTTLToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	documents := mock.NewMockDocumentStore(ctrl)
	documents.EXPECT().
		Insert(gomock.Any(), "alice", gomock.Any(), 24*time.Hour).
		Return(nil)

	creds := NewCredentialStore(documents, logger.Nop())

	_, err := creds.Create(ctx, "alice", "s3cret", 24*time.Hour)
	require.NoError(t, err)
}

func TestCredentialStore_StorageErrorsAreNotCredentialErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	storageErr := errors.New("connection refused")

	documents := mock.NewMockDocumentStore(ctrl)
	documents.EXPECT().
		Get(gomock.Any(), "alice").
		Return(nil, store.Version(0), storageErr)

	creds := NewCredentialStore(documents, logger.Nop())

	_, err := creds.Verify(ctx, "alice", "s3cret")
	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
