package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8095", cfg.HTTPPort)
	assert.Equal(t, ":8095", cfg.Addr())
	assert.False(t, cfg.UseRealBackend)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, time.Second, cfg.FixtureDelay)
	assert.Equal(t, "collapsed", cfg.ErrorMessages)
	assert.Equal(t, "hashed", cfg.PIILevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PERSON_FINDER_HTTP_PORT", "9000")
	t.Setenv("PERSON_FINDER_USE_REAL_BACKEND", "true")
	t.Setenv("PERSON_FINDER_UPSTREAM_URL", "https://hooks.example.com/person-finder")
	t.Setenv("PERSON_FINDER_TIMEOUT", "15s")
	t.Setenv("PERSON_FINDER_ERROR_MESSAGES", "detailed")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.True(t, cfg.UseRealBackend)
	assert.Equal(t, "https://hooks.example.com/person-finder", cfg.UpstreamURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "detailed", cfg.ErrorMessages)
}

func TestLoadConfig_GlobalLogFallbacks(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)

	t.Setenv("PERSON_FINDER_LOG_LEVEL", "warn")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Timeout:       time.Second,
			ErrorMessages: "collapsed",
			PIILevel:      "hashed",
			SamplingRate:  1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"real backend without url", func(c *Config) { c.UseRealBackend = true }, true},
		{"real backend with url", func(c *Config) { c.UseRealBackend = true; c.UpstreamURL = "http://x" }, false},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"negative fixture delay", func(c *Config) { c.FixtureDelay = -time.Second }, true},
		{"unknown message mode", func(c *Config) { c.ErrorMessages = "verbose" }, true},
		{"unknown pii level", func(c *Config) { c.PIILevel = "partial" }, true},
		{"sampling above one", func(c *Config) { c.SamplingRate = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PERSON_FINDER_HTTP_PORT=7777\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("PERSON_FINDER_HTTP_PORT", "")
	LoadEnvFiles()

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.HTTPPort)
}
