package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrsteele09/podmixer-console/internal/config"
	"github.com/jrsteele09/podmixer-console/session"
	"github.com/jrsteele09/podmixer-console/session/filestore"
	"github.com/jrsteele09/podmixer-console/session/redisstore"
	"github.com/jrsteele09/podmixer-console/session/sqlitestore"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// tokenStore is the configured session.Store plus its lifecycle hooks
type tokenStore struct {
	session.Store
	close func()
	watch func(ctx context.Context, onChange func())
}

func openStore(ctx context.Context, c config.Config) (*tokenStore, error) {
	noWatch := func(context.Context, func()) {}

	switch c.GetTokenStore() {
	case config.TokenStoreFile:
		fs, err := filestore.New(c.GetDataFolder(), c.GetTokenSecret())
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", fs.Path()).Msg("Token store: file")
		return &tokenStore{
			Store: fs,
			close: func() {},
			watch: func(ctx context.Context, onChange func()) {
				go func() {
					if err := fs.Watch(ctx, onChange); err != nil {
						log.Warn().Err(err).Msg("Token file watcher stopped")
					}
				}()
			},
		}, nil

	case config.TokenStoreSQLite:
		path := c.GetSQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("[openStore] failed to create %s: %w", filepath.Dir(path), err)
		}
		ss, err := sqlitestore.Open(path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("Token store: sqlite")
		return &tokenStore{
			Store: ss,
			close: func() { _ = ss.Close() },
			watch: noWatch,
		}, nil

	case config.TokenStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("[openStore] redis %s unreachable: %w", c.GetRedisAddr(), err)
		}
		rs := redisstore.New(rdb, c.GetRedisPrefix())
		log.Info().Str("key", rs.Key()).Msg("Token store: redis")
		return &tokenStore{
			Store: rs,
			close: func() { _ = rdb.Close() },
			watch: noWatch,
		}, nil

	default:
		return nil, fmt.Errorf("[openStore] unknown token store %q", c.GetTokenStore())
	}
}
