package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahsanfayaz52/notesapi/internal/db"
)

var configKeys = []string{
	"DB_URI", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_NAME",
	"PORT", "CORS_ORIGINS", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv unsets the config variables for the duration of the test. godotenv never
// overrides a variable that is present, even when it is empty, so t.Setenv("") won't do.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		prev, ok := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if ok {
				os.Setenv(key, prev)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	_, err = cfg.DatabaseSource()
	assert.ErrorIs(t, err, db.ErrNoDatabase)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "DB_URI=sqlite:///notes.db\n" +
		"PORT=8081\n" +
		"CORS_ORIGINS=https://notes.example.com, http://localhost:3000\n" +
		"SHUTDOWN_TIMEOUT=10s\n" +
		"LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, []string{"https://notes.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)

	src, err := cfg.DatabaseSource()
	require.NoError(t, err)
	assert.Equal(t, db.Source{Driver: db.DriverSQLite, DSN: "notes.db"}, src)
}

func TestLoadConfig_EnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=8081\n"), 0o600))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadConfig_InvalidShutdownTimeout(t *testing.T) {
	for _, v := range []string{"soon", "10", "-5s", "0s"} {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SHUTDOWN_TIMEOUT", v)

			cfg, err := LoadConfig("")
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
		})
	}
}

func TestDatabaseSource_DiscreteSettings(t *testing.T) {
	cfg := &Config{DBUser: "root", DBPassword: "pw", DBHost: "localhost:3306", DBName: "notes"}

	src, err := cfg.DatabaseSource()
	require.NoError(t, err)
	assert.Equal(t, db.DriverMySQL, src.Driver)
	assert.Equal(t, db.BuildMySQLDSN("root", "pw", "localhost:3306", "notes"), src.DSN)
}
