package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"github.com/on-the-ground/effect_ive_profile/effects/store"
	"github.com/on-the-ground/effect_ive_profile/profile"
	memstore "github.com/on-the-ground/effect_ive_profile/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var marco = profile.Profile{UserID: "1234", Name: "MarcoPolo", EmailAddress: "marcopolo@mp.com"}

func withMemDB(t *testing.T, seed ...profile.Profile) (context.Context, func() context.Context) {
	t.Helper()
	db, err := memstore.NewMemDB(seed...)
	require.NoError(t, err)
	return store.WithEffectHandler(context.Background(), model.NewEffectScopeConfig(4, 3), db)
}

func TestStoreEffect_LookupAndPersist(t *testing.T) {
	ctx, end := withMemDB(t, marco)
	defer end()

	got, err := store.EffectLookup(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, marco, got)

	updated := marco
	updated.EmailAddress = "new@mp.com"
	require.NoError(t, store.EffectPersist(ctx, updated))

	got, err = store.EffectLookup(ctx, "1234")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestStoreEffect_LookupMissingUser(t *testing.T) {
	ctx, end := withMemDB(t)
	defer end()

	_, err := store.EffectLookup(ctx, "nobody")

	var dbErr *profile.DbError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, memstore.ErrNotFound, dbErr.Message)
}

func TestStoreEffect_ConcurrentUsers(t *testing.T) {
	ctx, end := withMemDB(t)
	defer end()

	ids := []string{"1", "2", "3", "4", "5", "6"}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.EffectPersist(ctx, profile.Profile{UserID: id, Name: "user-" + id}))
		}()
	}
	wg.Wait()

	for _, id := range ids {
		got, err := store.EffectLookup(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "user-"+id, got.Name)
	}
}

func TestStoreEffect_CancelledCaller(t *testing.T) {
	ctx, end := withMemDB(t, marco)
	defer end()

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err := store.EffectLookup(cancelled, "1234")
	assert.ErrorIs(t, err, context.Canceled)
}
