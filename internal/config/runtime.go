package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	path := os.Getenv("GRAMBOT_RUNTIME_PATH")
	if path == "" {
		path = ".grambot"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func IsDebug() bool {
	return os.Getenv("GRAMBOT_DEBUG") == "1"
}
