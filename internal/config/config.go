package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Web server configuration
	Web WebConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Logging configuration
	Log LogConfig

	// Tracing configuration
	Telemetry TelemetryConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"
	Path   string // Path to SQLite database file
	DSN    string // PostgreSQL connection string
	Debug  bool   // Log every SQL statement
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string
	Port int
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string // zerolog level name
	Pretty bool   // Human readable console output instead of JSON
}

// TelemetryConfig holds OpenTelemetry exporter configuration
type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string // Empty disables trace export
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "", // Empty means ~/.config/corlevo/corlevo.db
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 8080,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/corlevo-%d.pid", os.Getuid()),
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "corlevo-api",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("postgres driver requires a DSN")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetWebPort sets the web server port with validation
func (c *Config) SetWebPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	c.Web.Port = port
	return nil
}

// SetDriver switches the database dialect
func (c *Config) SetDriver(driver string) error {
	driver = strings.ToLower(driver)
	if driver != DriverSQLite && driver != DriverPostgres {
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	c.Database.Driver = driver
	return nil
}

// Address returns host:port for the HTTP listener
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

// String returns a string representation of the config
func (c *Config) String() string {
	dsn := ""
	if c.Database.DSN != "" {
		dsn = "(set)"
	}
	return fmt.Sprintf(`Configuration:
  Database:
    Driver: %s
    Path: %s
    DSN: %s
    Debug: %v
  Web:
    Host: %s
    Port: %d
  Daemon:
    PID File: %s
  Log:
    Level: %s
    Pretty: %v
  Telemetry:
    Service: %s
    OTLP Endpoint: %s`,
		c.Database.Driver,
		c.Database.Path,
		dsn,
		c.Database.Debug,
		c.Web.Host,
		c.Web.Port,
		c.Daemon.PIDFile,
		c.Log.Level,
		c.Log.Pretty,
		c.Telemetry.ServiceName,
		c.Telemetry.OTLPEndpoint,
	)
}
