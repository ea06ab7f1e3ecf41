package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CORLEVO_DB_DRIVER", "POSTGRES")
	t.Setenv("CORLEVO_DB_DSN", "postgres://localhost/corlevo")
	t.Setenv("CORLEVO_DB_DEBUG", "true")
	t.Setenv("CORLEVO_WEB_HOST", "0.0.0.0")
	t.Setenv("CORLEVO_WEB_PORT", "9000")
	t.Setenv("CORLEVO_LOG_LEVEL", "debug")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")

	cfg := New()

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/corlevo", cfg.Database.DSN)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, 9000, cfg.Web.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://collector:4318", cfg.Telemetry.OTLPEndpoint)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("CORLEVO_DB_DRIVER", "oracle")
	t.Setenv("CORLEVO_WEB_PORT", "not-a-port")
	t.Setenv("CORLEVO_LOG_PRETTY", "maybe")

	cfg := New()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.False(t, cfg.Log.Pretty)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Web.Port = 0 }, wantErr: true},
		{name: "empty host", mutate: func(c *Config) { c.Web.Host = "" }, wantErr: true},
		{name: "empty pid file", mutate: func(c *Config) { c.Daemon.PIDFile = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
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

func TestStringHidesDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = "postgres://user:secret@db/corlevo"

	assert.NotContains(t, cfg.String(), "secret")
	assert.Contains(t, cfg.String(), "DSN: (set)")
}
