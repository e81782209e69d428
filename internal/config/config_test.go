package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jjenkins/bulletin/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "PORT", "MONGODB_URI", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "does-not-exist.env")
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/bulletin")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadFile(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017/bulletin", cfg.MongoURI)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv only fills keys that are not already set, so drop them entirely.
	for _, key := range []string{"MONGODB_URI", "LOG_FORMAT"} {
		require.NoError(t, os.Unsetenv(key))
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("MONGODB_URI")
		_ = os.Unsetenv("LOG_FORMAT")
	})

	path := filepath.Join(t.TempDir(), ".env")
	content := "MONGODB_URI=mongodb://db.example:27017/courses\nLOG_FORMAT=json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.example:27017/courses", cfg.MongoURI)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingConnectionString(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(missingFile(t))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	assert.Contains(t, err.Error(), "MONGODB_URI environment variable is required")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:      EnvProduction,
			Port:     "3000",
			MongoURI: "mongodb://localhost/bulletin",
			Log:      LogConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		valid  bool
	}{
		{"valid", func(c *Config) {}, true},
		{"postgres uri", func(c *Config) { c.MongoURI = "postgres://localhost/bulletin" }, true},
		{"unknown env", func(c *Config) { c.Env = "staging" }, false},
		{"bad port", func(c *Config) { c.Port = "http" }, false},
		{"empty uri", func(c *Config) { c.MongoURI = "" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "pretty" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
			}
		})
	}
}

func TestLoad_EnvironmentWinsOverEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://from-env:27017/bulletin")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Cleanup(func() { _ = os.Unsetenv("LOG_LEVEL") })

	path := filepath.Join(t.TempDir(), ".env")
	content := "MONGODB_URI=mongodb://from-file:27017/bulletin\nLOG_LEVEL=warn\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://from-env:27017/bulletin", cfg.MongoURI)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_UnreadableEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/bulletin")

	cfg, err := LoadFile(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017/bulletin", cfg.MongoURI)
}
