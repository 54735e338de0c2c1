package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("APP_CONFIG_NAME", "does-not-exist")

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, EnvDev, cfg.Env)
	require.Equal(t, 3006, cfg.Server.Port)
	require.Equal(t, 20, cfg.Database.MaxOpenConns)
	require.Equal(t, 30*time.Second, cfg.Database.ConnMaxIdleTime)
	require.Equal(t, 3*time.Second, cfg.Collaborators.Timeout)
	require.Equal(t, "EVENTS", cfg.Events.Stream)
	require.Empty(t, cfg.Events.NatsURL)
}

func TestNew_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "payments.yaml")
	body := []byte("server:\n  port: 9100\ncollaborators:\n  billing_url: http://billing:3004\n  timeout: 2s\n")
	require.NoError(t, os.WriteFile(file, body, 0o600))

	t.Setenv("APP_CONFIG_FILE", file)
	t.Setenv("APP_COLLABORATORS_NOTIFICATION_URL", "http://notify:3007")

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "http://billing:3004", cfg.Collaborators.BillingURL)
	require.Equal(t, "http://notify:3007", cfg.Collaborators.NotificationURL)
	require.Equal(t, 2*time.Second, cfg.Collaborators.Timeout)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "server.port")
	require.Contains(t, err.Error(), "database.dsn")
	require.Contains(t, err.Error(), "collaborators.timeout")

	cfg = &Config{
		Server:        ServerConfig{Port: 1},
		Database:      DBConfig{DSN: "postgres://x"},
		Collaborators: CollaboratorConfig{Timeout: time.Second},
	}
	require.NoError(t, cfg.Validate())
}
