package config

import (
	"os"
	"path/filepath"
)

// HomePath returns the studio's data directory: $GRAPHYBOOK_PATH if set,
// otherwise ~/.graphybook.
func HomePath() string {
	if v := os.Getenv("GRAPHYBOOK_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".graphybook")
	}
	return filepath.Join(home, ".graphybook")
}

// ConfigPath returns the default config file.
func ConfigPath() string {
	return filepath.Join(HomePath(), "config.jsonc")
}

// DotenvPath returns the default .env file.
func DotenvPath() string {
	return filepath.Join(HomePath(), ".env")
}

// LogPath returns the terminal studio's default log file.
func LogPath() string {
	return filepath.Join(HomePath(), "tui.log")
}

// HeartbeatPath returns the file a running web studio advertises itself in.
func HeartbeatPath() string {
	return filepath.Join(HomePath(), "studio.json")
}
