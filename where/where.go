// Package where resolves the filesystem locations dotplay reads from and writes to.
package where

import (
	"os"
	"path/filepath"

	"github.com/dotplay-cli/dotplay/constant"
	"github.com/dotplay-cli/dotplay/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory when set.
const EnvConfigPath = "DOTPLAY_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory.
// It follows os.UserConfigDir unless DOTPLAY_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Dotplay))
}

// Cache resolves the cache directory, falling back to ./cache when the platform has none.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Dotplay))
}

// Downloads is where fetched remote animations are cached.
func Downloads() string {
	return ensureDir(filepath.Join(Cache(), "downloads"))
}

// Logs resolves the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Hooks resolves the directory holding Lua hook scripts.
func Hooks() string {
	return ensureDir(filepath.Join(Config(), "hooks"))
}

// History is the file listing recently played sources.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Temp resolves a volatile directory for converted and combined files.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Dotplay))
}
