package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "pomo"

type Config struct {
	ConfigDir    string
	DataDir      string
	SettingsPath string
	DBPath       string
	LogPath      string
	SocketDir    string
	AssetsDir    string
	LogLevel     string
	NoAudio      bool
}

type Options struct {
	ConfigDir string
	DataDir   string
	LogLevel  string
	NoAudio   bool
}

// New resolves every path the application touches. Empty directories fall
// back to the user config dir, then POMO_DATA_DIR / POMO_ASSETS_DIR.
func New(opts Options) (Config, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve user config dir: %w", err)
		}
		configDir = filepath.Join(base, appName)
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = os.Getenv("POMO_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = configDir
	}
	assetsDir := os.Getenv("POMO_ASSETS_DIR")
	if assetsDir == "" {
		assetsDir = filepath.Join(dataDir, "sounds")
	}
	return Config{
		ConfigDir:    configDir,
		DataDir:      dataDir,
		SettingsPath: filepath.Join(configDir, "settings.yaml"),
		DBPath:       filepath.Join(dataDir, "pomo.db"),
		LogPath:      filepath.Join(dataDir, "pomo.log"),
		SocketDir:    filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d", appName, os.Getuid())),
		AssetsDir:    assetsDir,
		LogLevel:     opts.LogLevel,
		NoAudio:      opts.NoAudio,
	}, nil
}
