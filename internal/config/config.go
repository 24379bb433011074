package config

import (
	"fmt"
	"time"
)

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	API
	Storage
	Security
}

// New returns a configuration backed only by environment variables.
func New() Config {
	return newMainConfig(settings{})
}

// Load returns a configuration backed by environment variables, falling back
// to the values of the TOML file at path. An empty path behaves like New.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}
	s, err := readSettingsFile(path)
	if err != nil {
		return nil, fmt.Errorf("[config Load] %w", err)
	}
	return newMainConfig(s), nil
}

func newMainConfig(s settings) mainConfig {
	return mainConfig{
		EnvVars:  EnvVars{s: s},
		API:      API{s: s},
		Storage:  Storage{s: s},
		Security: Security{s: s},
	}
}
