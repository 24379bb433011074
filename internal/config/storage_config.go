package config

import "path/filepath"

// Token store kinds
const (
	TokenStoreFile   = "file"
	TokenStoreSQLite = "sqlite"
	TokenStoreRedis  = "redis"
)

type StorageConfig interface {
	GetTokenStore() string
	GetTokenSecret() string
	GetSQLitePath() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
}

type Storage struct {
	s settings
}

var _ StorageConfig = Storage{}

func (st Storage) GetTokenStore() string {
	return st.s.get("TOKEN_STORE", TokenStoreFile)
}

// GetTokenSecret returns the secret used to seal the token at rest. Empty means
// the file store keeps the raw token.
func (st Storage) GetTokenSecret() string {
	return st.s.get("TOKEN_SECRET", "")
}

func (st Storage) GetSQLitePath() string {
	folder := EnvVars{s: st.s}.GetDataFolder()
	return st.s.get("SQLITE_PATH", filepath.Join(folder, "console.db"))
}

func (st Storage) GetRedisAddr() string {
	return st.s.get("REDIS_ADDR", "localhost:6379")
}

func (st Storage) GetRedisPassword() string {
	return st.s.get("REDIS_PASSWORD", "")
}

func (st Storage) GetRedisDB() int {
	return st.s.getInt("REDIS_DB", 0)
}

func (st Storage) GetRedisPrefix() string {
	return st.s.get("REDIS_PREFIX", "podmixer:console:")
}
