package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/session/sqlitestore"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "console.db")

	store, err := sqlitestore.Open(path)
	require.NoError(t, err)

	_, err = store.Get(ctx)
	require.ErrorIs(t, err, errors.ErrTokenNotFound)

	require.NoError(t, store.Set(ctx, "first"))
	require.NoError(t, store.Set(ctx, "second"))
	got, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "second", got)
	require.NoError(t, store.Close())

	// Survives reopening
	store, err = sqlitestore.Open(path)
	require.NoError(t, err)
	defer store.Close()
	got, err = store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "second", got)

	require.NoError(t, store.Delete(ctx))
	require.NoError(t, store.Delete(ctx))
	_, err = store.Get(ctx)
	require.ErrorIs(t, err, errors.ErrTokenNotFound)
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	store, err := sqlitestore.Open(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get(ctx)
	require.ErrorIs(t, err, errors.ErrStoreClosed)
	require.ErrorIs(t, store.Set(ctx, "token"), errors.ErrStoreClosed)
	require.ErrorIs(t, store.Delete(ctx), errors.ErrStoreClosed)
}
