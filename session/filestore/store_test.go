package filestore_test

import (
	"context"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/session/filestore"
	"github.com/stretchr/testify/require"
)

const testToken = "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhZG1pbiJ9.c2ln"

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.New(t.TempDir(), "")
	require.NoError(t, err)

	_, err = store.Get(ctx)
	require.ErrorIs(t, err, errors.ErrTokenNotFound)

	require.NoError(t, store.Set(ctx, testToken))
	got, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, testToken, got)

	require.NoError(t, store.Set(ctx, "second"))
	got, err = store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "second", got)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.New(t.TempDir(), "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx))
	require.NoError(t, store.Set(ctx, testToken))
	require.NoError(t, store.Delete(ctx))
	require.NoError(t, store.Delete(ctx))

	_, err = store.Get(ctx)
	require.ErrorIs(t, err, errors.ErrTokenNotFound)
}

func TestPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	folder := t.TempDir()

	first, err := filestore.New(folder, "secret")
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, testToken))

	second, err := filestore.New(folder, "secret")
	require.NoError(t, err)
	got, err := second.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, testToken, got)
}

func TestSealedAtRest(t *testing.T) {
	ctx := context.Background()
	folder := t.TempDir()
	store, err := filestore.New(folder, "secret")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, testToken))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), testToken))

	wrongKey, err := filestore.New(folder, "other-secret")
	require.NoError(t, err)
	_, err = wrongKey.Get(ctx)
	require.ErrorIs(t, err, errors.ErrSealedToken)

	noKey, err := filestore.New(folder, "")
	require.NoError(t, err)
	_, err = noKey.Get(ctx)
	require.ErrorIs(t, err, errors.ErrSealedToken)
}

func TestWatchReportsChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := filestore.New(t.TempDir(), "")
	require.NoError(t, err)

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, func() { changes.Add(1) }) }()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, store.Set(ctx, testToken))
	require.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	before := changes.Load()
	require.NoError(t, store.Delete(ctx))
	require.Eventually(t, func() bool { return changes.Load() > before }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
