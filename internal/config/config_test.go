package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STX_E2E_APP_PATH", "/opt/stacks-wallet/stacks-wallet")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "/opt/stacks-wallet/stacks-wallet", cfg.AppPath)
	require.Equal(t, "screenshots", cfg.ScreenshotDir)
	require.Equal(t, 9222, cfg.DebugPort)
	require.Equal(t, 20*time.Minute, cfg.Timeout)
	require.Equal(t, 30*time.Second, cfg.WaitTimeout)
	require.Equal(t, time.Second, cfg.SettleDelay)
	require.Equal(t, "sqlite3", cfg.LedgerDriver)
	require.Equal(t, "STX_API_URL", cfg.StubAPIEnv)
	require.Empty(t, cfg.RedisAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "STX_E2E_APP_PATH=./node_modules/.bin/electron\n" +
		"STX_E2E_APP_ARGS=.,--no-sandbox\n" +
		"STX_E2E_WAIT_TIMEOUT=5s\n" +
		"STX_E2E_SCREENSHOT_DIR=out/shots\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	// Already exported variables win over the file.
	t.Setenv("STX_E2E_SCREENSHOT_DIR", "from-env")
	t.Setenv("STX_E2E_APP_PATH", "")
	os.Unsetenv("STX_E2E_APP_PATH")
	t.Setenv("STX_E2E_APP_ARGS", "")
	os.Unsetenv("STX_E2E_APP_ARGS")
	t.Setenv("STX_E2E_WAIT_TIMEOUT", "")
	os.Unsetenv("STX_E2E_WAIT_TIMEOUT")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	require.Equal(t, "./node_modules/.bin/electron", cfg.AppPath)
	require.Equal(t, []string{".", "--no-sandbox"}, cfg.AppArgs)
	require.Equal(t, 5*time.Second, cfg.WaitTimeout)
	require.Equal(t, "from-env", cfg.ScreenshotDir)
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("STX_E2E_TIMEOUT", "forever")
	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{ConfigDir: "c", DebugPort: 9222, Timeout: time.Minute, WaitTimeout: time.Second, LaunchTimeout: time.Second}
	require.ErrorContains(t, cfg.Validate(), "APP_PATH")

	cfg.AppPath = "wallet"
	require.NoError(t, cfg.Validate())

	cfg.DebugPort = 70000
	require.Error(t, cfg.Validate())
}

func TestPaths(t *testing.T) {
	cfg := &Config{ConfigDir: "test-config", ScreenshotDir: "screenshots"}
	require.Equal(t, filepath.Join("test-config", "config.json"), cfg.ConfigFile())
	require.Equal(t, filepath.Join("screenshots", "restore-wallet", "mainnet-after-close-stx-modal.png"),
		cfg.Screenshot("restore-wallet/mainnet-after-close-stx-modal.png"))
}
