package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindflow/mindflow/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:            ":8080",
		DBPath:          "test.db",
		LogLevel:        "INFO",
		MazeWordTarget:  5,
		MemorizeSeconds: 15,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := validConfig()
	cfg.LogLevel = "VERBOSE"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_GameTunables(t *testing.T) {
	cfg := validConfig()
	cfg.MazeWordTarget = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAZE_WORD_TARGET")

	cfg = validConfig()
	cfg.MemorizeSeconds = -1
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MEMORIZE_SECONDS")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "MAZE_WORD_TARGET")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("MAZE_WORD_TARGET", "3")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 3, cfg.MazeWordTarget)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("MEMORIZE_SECONDS", "soon")

	cfg := config.Load()
	assert.Equal(t, 15, cfg.MemorizeSeconds)
}
