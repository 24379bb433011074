package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/podmixer-console/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_STORE", "")
	t.Setenv("API_TIMEOUT", "")

	c := config.New()
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, config.TokenStoreFile, c.GetTokenStore())
	require.Equal(t, 10*time.Second, c.GetAPITimeout())
	require.Equal(t, filepath.Join(c.GetDataFolder(), "console.db"), c.GetSQLitePath())
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.toml")
	content := `
port = "9000"
token_store = "redis"

[api]
base_url = "http://podmixer:3000"
timeout = "3s"

[redis]
db = 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "")
	t.Setenv("TOKEN_STORE", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("REDIS_DB", "")

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", c.GetPort())
	require.Equal(t, config.TokenStoreRedis, c.GetTokenStore())
	require.Equal(t, "http://podmixer:3000", c.GetAPIBaseURL())
	require.Equal(t, 3*time.Second, c.GetAPITimeout())
	require.Equal(t, 4, c.GetRedisDB())

	t.Setenv("PORT", ":7000")
	require.Equal(t, ":7000", c.GetPort())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestDurationSeconds(t *testing.T) {
	t.Setenv("API_TIMEOUT", "30")
	require.Equal(t, 30*time.Second, config.New().GetAPITimeout())
}
