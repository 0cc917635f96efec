package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemDB_BasicOperations(t *testing.T) {
	ctx := context.Background()
	marco := profile.Profile{UserID: "1234", Name: "MarcoPolo", EmailAddress: "marcopolo@mp.com"}

	s, err := store.NewMemDB(marco)
	require.NoError(t, err)

	// Lookup (seeded)
	got, err := s.Lookup(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, marco, got)

	// Persist (replace)
	updated := marco
	updated.EmailAddress = "new@mp.com"
	require.NoError(t, s.Persist(ctx, updated))

	got, err = s.Lookup(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	// Persist (insert)
	other := profile.Profile{UserID: "5678", Name: "Kublai", EmailAddress: "khan@mp.com"}
	require.NoError(t, s.Persist(ctx, other))
	got, err = s.Lookup(ctx, "5678")
	require.NoError(t, err)
	assert.Equal(t, other, got)
}

func TestMemDB_LookupMissingIsDbError(t *testing.T) {
	s, err := store.NewMemDB()
	require.NoError(t, err)

	_, err = s.Lookup(context.Background(), "nobody")
	var dbErr *profile.DbError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, store.ErrNotFound, dbErr.Message)
}

func TestMemDB_CancelledContext(t *testing.T) {
	s, err := store.NewMemDB()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Lookup(ctx, "1234")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Persist(ctx, profile.Profile{UserID: "1"}), context.Canceled)
}
