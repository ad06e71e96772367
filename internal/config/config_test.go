package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{Path: "/tmp/librasys"},
		Server: ServerConfig{Name: "Test", Port: "8080"},
		Assistant: AssistantConfig{
			Model:   "gemini-2.5-flash",
			BaseURL: "https://generativelanguage.googleapis.com",
		},
	}
}

func TestValidate_Passes(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_RejectsBadEnvironment(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "qa"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RequiresDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.Path = ""
	assert.Error(t, cfg.Validate())
}

func TestAssistantEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.Assistant.Enabled())

	cfg.Assistant.APIKey = "test-key"
	assert.True(t, cfg.Assistant.Enabled())
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", got)

	got, err = expandPath("/absolute/dir", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/dir", got)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err = expandPath("~/librasys", "/default")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "librasys"), got)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nLIBRASYS_TEST_KEY=from-file\nLIBRASYS_TEST_QUOTED=\"quoted\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("LIBRASYS_TEST_KEY", "")
	t.Setenv("LIBRASYS_TEST_QUOTED", "")
	os.Unsetenv("LIBRASYS_TEST_KEY")
	os.Unsetenv("LIBRASYS_TEST_QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "from-file", os.Getenv("LIBRASYS_TEST_KEY"))
	assert.Equal(t, "quoted", os.Getenv("LIBRASYS_TEST_QUOTED"))
}

func TestLoadEnvFile_EnvVarWins(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LIBRASYS_TEST_WINNER=file\n"), 0o600))

	t.Setenv("LIBRASYS_TEST_WINNER", "env")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "env", os.Getenv("LIBRASYS_TEST_WINNER"))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("", "LIBRASYS_TEST_NO_SUCH_ENV", "15m")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, d)

	d, err = parseDurationValue("2h", "LIBRASYS_TEST_NO_SUCH_ENV", "15m")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, d)

	_, err = parseDurationValue("soon", "LIBRASYS_TEST_NO_SUCH_ENV", "15m")
	assert.Error(t, err)
}
