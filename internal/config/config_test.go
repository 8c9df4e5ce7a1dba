package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "secret")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StoreMongoDB, cfg.Store.Backend)
	assert.Equal(t, "rao@rao.com", cfg.Auth.Email)
	assert.Equal(t, "0 20 * * 5", cfg.Reporting.CronSchedule)
	assert.True(t, cfg.Server.MetricsEnabled)
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_BACKEND=memory\nAUTH_TOKEN_SECRET=from-file\nMETRICS_ENABLED=false\n"), 0o600))

	// godotenv never overrides variables that are already set.
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("AUTH_TOKEN_SECRET", "")
	t.Setenv("METRICS_ENABLED", "")
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("AUTH_TOKEN_SECRET")
	os.Unsetenv("METRICS_ENABLED")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "from-file", cfg.Auth.TokenSecret)
	assert.False(t, cfg.Server.MetricsEnabled)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Store:     StoreConfig{Backend: StoreMemory},
			Auth:      AuthConfig{Email: "a@b.c", Password: "p", TokenSecret: "s"},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "UTC"},
		}
	}

	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"unknown backend":        func(c *Config) { c.Store.Backend = "sqlite" },
		"firestore no project":   func(c *Config) { c.Store.Backend = StoreFirestore },
		"missing token secret":   func(c *Config) { c.Auth.TokenSecret = "" },
		"whatsapp without phone": func(c *Config) { c.WhatsApp.AccessToken = "tok" },
		"sheets half configured": func(c *Config) { c.Sheets.SpreadsheetID = "sheet" },
		"missing cron":           func(c *Config) { c.Reporting.CronSchedule = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
