package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every variable read into Config, e.g. STX_E2E_APP_PATH.
const EnvPrefix = "STX_E2E"

// ConfigFileName is the wallet's persisted state inside the config directory.
const ConfigFileName = "config.json"

// Config contains all configuration parameters for a scenario run.
type Config struct {
	AppPath string   `envconfig:"APP_PATH"`
	AppArgs []string `envconfig:"APP_ARGS"`
	AppDir  string   `envconfig:"APP_DIR"`

	ConfigDir     string `envconfig:"CONFIG_DIR" default:"test-config"`
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR" default:"screenshots"`
	DebugPort     int    `envconfig:"DEBUG_PORT" default:"9222"`

	Timeout       time.Duration `envconfig:"TIMEOUT" default:"20m"`
	LaunchTimeout time.Duration `envconfig:"LAUNCH_TIMEOUT" default:"60s"`
	WaitTimeout   time.Duration `envconfig:"WAIT_TIMEOUT" default:"30s"`
	SettleDelay   time.Duration `envconfig:"SETTLE_DELAY" default:"1s"`

	LedgerDriver string `envconfig:"LEDGER_DRIVER" default:"sqlite3"`
	LedgerDSN    string `envconfig:"LEDGER_DSN" default:"stx-e2e-runs.db"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	StubAPIPort int    `envconfig:"STUB_API_PORT" default:"0"`
	StubAPIEnv  string `envconfig:"STUB_API_ENV" default:"STX_API_URL"`
}

// Load reads envFile (if it exists) into the environment without overriding
// variables that are already set, then processes the environment into a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings needed to launch the application.
func (c *Config) Validate() error {
	if c.AppPath == "" {
		return fmt.Errorf("%s_APP_PATH is required", EnvPrefix)
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("%s_CONFIG_DIR must not be empty", EnvPrefix)
	}
	if c.Timeout <= 0 || c.WaitTimeout <= 0 || c.LaunchTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.DebugPort <= 0 || c.DebugPort > 65535 {
		return fmt.Errorf("invalid debug port %d", c.DebugPort)
	}
	return nil
}

// ConfigFile returns the path of the wallet's persisted configuration.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.ConfigDir, ConfigFileName)
}

// Screenshot returns the path of a screenshot below the screenshot directory.
func (c *Config) Screenshot(name string) string {
	return filepath.Join(c.ScreenshotDir, filepath.FromSlash(name))
}
