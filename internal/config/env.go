package config

import (
	"os"
	"strconv"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Database configuration
	if driver := os.Getenv("CORLEVO_DB_DRIVER"); driver != "" {
		_ = cfg.SetDriver(driver)
	}

	if dbPath := os.Getenv("CORLEVO_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if dsn := os.Getenv("CORLEVO_DB_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	if debug := os.Getenv("CORLEVO_DB_DEBUG"); debug != "" {
		if val, err := strconv.ParseBool(debug); err == nil {
			cfg.Database.Debug = val
		}
	}

	// Web configuration
	if webHost := os.Getenv("CORLEVO_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("CORLEVO_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil {
			_ = cfg.SetWebPort(port)
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("CORLEVO_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Logging configuration
	if level := os.Getenv("CORLEVO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if pretty := os.Getenv("CORLEVO_LOG_PRETTY"); pretty != "" {
		if val, err := strconv.ParseBool(pretty); err == nil {
			cfg.Log.Pretty = val
		}
	}

	// Telemetry uses the standard OTel variable names
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		cfg.Telemetry.ServiceName = name
	}

	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		cfg.Telemetry.OTLPEndpoint = endpoint
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
