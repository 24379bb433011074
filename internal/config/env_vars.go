package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	folderEnvVar   = "FOLDER"
	logLevelEnvVar = "LOG_LEVEL"
	envEnvVar      = "ENV"

	// ConfigFileEnvVar names the optional TOML file read at startup
	ConfigFileEnvVar = "CONSOLE_CONFIG"
)

type EnvVars struct {
	s settings
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.s.get(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.s.get(appNameVar, "PodMixer Console")
}

func (e EnvVars) GetDataFolder() string {
	return e.s.get(folderEnvVar, "./data")
}

func (e EnvVars) GetLogLevel() string {
	return e.s.get(logLevelEnvVar, "info")
}

func (e EnvVars) GetEnv() string {
	return strings.ToUpper(e.s.get(envEnvVar, "DEV"))
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
