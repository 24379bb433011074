package redisstore

import (
	"context"

	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/session"
	"github.com/redis/go-redis/v9"
)

// Store keeps the token in Redis under prefix+session.StorageKey, letting
// several console replicas share one operator session.
type Store struct {
	rdb *redis.Client
	key string
}

var _ session.Store = (*Store)(nil)

// New creates a Redis-backed store.
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, key: prefix + session.StorageKey}
}

// Key returns the Redis key holding the token.
func (s *Store) Key() string {
	return s.key
}

// storeErr maps a closed client onto errors.ErrStoreClosed
func storeErr(err error, op string) error {
	if errors.Is(err, redis.ErrClosed) {
		err = errors.ErrStoreClosed
	}
	return errors.Wrapf(err, "[redisstore %s]", op)
}

func (s *Store) Get(ctx context.Context) (string, error) {
	value, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errors.ErrTokenNotFound
	}
	if err != nil {
		return "", storeErr(err, "Get")
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, token string) error {
	if err := s.rdb.Set(ctx, s.key, token, 0).Err(); err != nil {
		return storeErr(err, "Set")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return storeErr(err, "Delete")
	}
	return nil
}
