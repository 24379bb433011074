package repofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/session"
)

// FakeStore is an in-memory session.Store
type FakeStore struct {
	mu    sync.RWMutex
	token *string

	// Err, when set, is returned by every operation
	Err error
}

var _ session.Store = (*FakeStore)(nil)

// NewFakeStore creates an empty in-memory token store
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (s *FakeStore) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return "", s.Err
	}
	if s.token == nil {
		return "", errors.ErrTokenNotFound
	}
	return *s.token, nil
}

func (s *FakeStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.token = &token
	return nil
}

func (s *FakeStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.token = nil
	return nil
}

// Stored returns the stored token and whether there is one
func (s *FakeStore) Stored() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return "", false
	}
	return *s.token, true
}
