package store

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func TestStore_SetAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := domain.UserRecord{
		DiscordUsername:  "someuser",
		DiscordID:        "111222333",
		VerificationCode: "ABC123",
		Roles:            []string{"role-dev"},
	}

	safe, err := s.Set(ctx, "t2_user1", record)
	require.NoError(t, err)
	assert.Equal(t, "someuser", safe.DiscordUsername)
	assert.Equal(t, []string{"role-dev"}, safe.Roles)

	got, err := s.Get(ctx, "t2_user1")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", got.VerificationCode)
	assert.Equal(t, "111222333", got.DiscordID)
}

func TestStore_GetMissingRecord(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "t2_nobody")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestStore_SetAppliesDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Nil roles must be written as an empty list, not dropped
	safe, err := s.Set(ctx, "t2_user2", domain.UserRecord{DiscordUsername: "someuser"})
	require.NoError(t, err)
	assert.NotNil(t, safe.Roles)

	got, err := s.Get(ctx, "t2_user2")
	require.NoError(t, err)
	assert.NotNil(t, got.Roles)
}

func TestStore_SetRejectsInvalidRecord(t *testing.T) {
	s := newTestStore(t)

	// Verified without a discord id violates the record invariant
	_, err := s.Set(context.Background(), "t2_user3", domain.UserRecord{VerificationStatus: true})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "t2_user4", domain.UserRecord{DiscordUsername: "someuser"})
	require.NoError(t, err)

	assert.NoError(t, s.Delete(ctx, "t2_user4"))
	assert.NoError(t, s.Delete(ctx, "t2_user4"))

	_, err = s.Get(ctx, "t2_user4")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestStore_OverwriteReplacesRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "t2_user5", domain.UserRecord{
		DiscordUsername:  "someuser",
		VerificationCode: "ABC123",
	})
	require.NoError(t, err)

	_, err = s.Set(ctx, "t2_user5", domain.UserRecord{
		DiscordUsername:    "someuser",
		DiscordID:          "111",
		VerificationStatus: true,
		Roles:              []string{"role-mod"},
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, "t2_user5")
	require.NoError(t, err)
	assert.True(t, got.VerificationStatus)
	assert.Empty(t, got.VerificationCode)
	assert.Equal(t, []string{"role-mod"}, got.Roles)
}

func TestStore_MalformedStoredValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Write garbage directly past the validation boundary
	bs := s.(*badgerStore)
	require.NoError(t, writeRaw(bs, "t2_user6", []byte("not json")))

	_, err := s.Get(ctx, "t2_user6")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestStore_StoredRecordMissingRoles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bs := s.(*badgerStore)
	require.NoError(t, writeRaw(bs, "t2_user7", []byte(`{"discordUsername":"someuser"}`)))

	_, err := s.Get(ctx, "t2_user7")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func writeRaw(s *badgerStore, userID string, raw []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(userID), raw)
	})
}

func TestStore_CheckHealth(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.CheckHealth(context.Background()))
}
