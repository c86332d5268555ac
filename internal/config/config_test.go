package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 8080
database:
  host: pg
  password: secret
jwt:
  secret: test-secret
worker:
  reminder_interval: 30m
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "pg", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry())
	assert.Equal(t, 30*time.Minute, cfg.Worker.ReminderInterval)
	assert.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL)
	assert.Equal(t, "City General", cfg.Hospital.DefaultName)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, "host=pg port=5432 user=postgres password=secret dbname=arogyavax sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, "jwt:\n  secret: from-file\n")
	t.Setenv("AROGYAVAX_DATABASE_HOST", "db.internal")
	t.Setenv("AROGYAVAX_JWT_SECRET", "from-env")
	t.Setenv("AROGYAVAX_AUTH_EXPOSE_OTP", "true")
	t.Setenv("AROGYAVAX_WORKER_AUDIT_RETENTION_DAYS", "7")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.True(t, cfg.Auth.ExposeOTP)
	assert.Equal(t, 7, cfg.Worker.AuditRetentionDays)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.EqualError(t, err, "jwt.secret is required")
}

func TestValidate_BootstrapAdminNeedsPassword(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: 1}, JWT: JWTConfig{Secret: "s"}}
	cfg.Auth.BootstrapAdmin.Email = "admin@admin.com"
	assert.Error(t, cfg.Validate())
}
