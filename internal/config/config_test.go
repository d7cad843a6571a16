package config

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STOREFRONT_PRIMARY__ENV",
		"STOREFRONT_DATABASE__URL",
		"STOREFRONT_DATABASE__HOST",
		"STOREFRONT_REDIS__ADDRESS",
		"STOREFRONT_SERVER__PORT",
		"STOREFRONT_INTEGRATION__NOTIFY_EMAIL",
		"STOREFRONT_INTEGRATION__RESEND_API_KEY",
	} {
		// Setenv registers the restore, Unsetenv removes the variable.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_FromDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_DATABASE__URL", "postgres://store:pw@db:5432/storefront")
	t.Setenv("STOREFRONT_SERVER__PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://store:pw@db:5432/storefront", cfg.Database.DSN())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Integration.NotificationsEnabled())
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 30*time.Second, cfg.Observability.HealthChecks.Interval)
}

func TestLoadConfig_RequiresDatabase(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSNFromParts(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "store", Password: "p@ss", Name: "storefront"}

	assert.Equal(t, "postgres://store:p%40ss@db:5432/storefront?sslmode=disable", d.DSN())
}

func TestDatabaseConfig_DSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "shop:admin", Password: "p@ss word+x/?", Name: "storefront", SSLMode: "require"}

	u, err := url.Parse(d.DSN())
	require.NoError(t, err)

	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss word+x/?", password)
	assert.Equal(t, "shop:admin", u.User.Username())
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/storefront", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "observability.health_checks.interval", envKey("STOREFRONT_OBSERVABILITY__HEALTH_CHECKS__INTERVAL"))
}

func TestObservabilityConfig_EnabledChecks(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.HealthChecks.Checks = []string{"Database, redis", " "}

	assert.Equal(t, []string{"database", "redis"}, c.EnabledChecks())
}
