package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// settings holds values read from the config file, keyed by the environment
// variable name they stand in for. Tables are flattened with "_", so
//
//	[api]
//	base_url = "http://podmixer:3000"
//
// supplies API_BASE_URL.
type settings map[string]string

func readSettingsFile(path string) (settings, error) {
	raw := map[string]any{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	s := settings{}
	flatten("", raw, s)
	return s, nil
}

func flatten(prefix string, values map[string]any, out settings) {
	for k, v := range values {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}
		switch value := v.(type) {
		case map[string]any:
			flatten(key, value, out)
		default:
			out[key] = fmt.Sprint(value)
		}
	}
}

// get resolves envVar from the environment first, then the config file.
func (s settings) get(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	if value, ok := s[envVar]; ok && value != "" {
		return value
	}
	return defaultValue
}

func (s settings) getInt(envVar string, defaultValue int) int {
	value, err := strconv.Atoi(s.get(envVar, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getDuration accepts Go durations ("15s") or a bare number of seconds.
func (s settings) getDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := s.get(envVar, "")
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
