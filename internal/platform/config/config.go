package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"studysphere/internal/platform/logging"
)

const (
	EnvDataDir  = "SPHERE_DATA_DIR"
	EnvLogLevel = "SPHERE_LOG_LEVEL"
	EnvTickMS   = "SPHERE_TICK_MS"

	DefaultTickInterval = 400 * time.Millisecond
)

type Config struct {
	DataDir      string
	StatePath    string
	DBPath       string
	LogPath      string
	LogLevel     string
	TickInterval time.Duration
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:      dataDir,
		StatePath:    filepath.Join(dataDir, "state.json"),
		DBPath:       filepath.Join(dataDir, "sphere.db"),
		LogPath:      filepath.Join(dataDir, "sphere.log"),
		LogLevel:     logging.DefaultLevel,
		TickInterval: DefaultTickInterval,
	}, nil
}

// Load resolves the configuration from an optional .env file, the
// environment and the --data flag, in increasing order of precedence.
func Load(dataDirFlag string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	dataDir := dataDirFlag
	if dataDir == "" {
		dataDir = os.Getenv(EnvDataDir)
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".studysphere")
	}

	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if raw := os.Getenv(EnvTickMS); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 || ms >= 1000 {
			return Config{}, fmt.Errorf("%s must be between 1 and 999, got %q", EnvTickMS, raw)
		}
		cfg.TickInterval = time.Duration(ms) * time.Millisecond
	}
	return cfg, nil
}
