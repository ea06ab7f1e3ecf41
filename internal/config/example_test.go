package config_test

import (
	"fmt"

	"github.com/corlevo/corlevo/internal/config"
)

// Example of creating a default configuration
func ExampleDefault() {
	cfg := config.Default()
	fmt.Println("Driver:", cfg.Database.Driver)
	fmt.Println("Web Port:", cfg.Web.Port)
	// Output:
	// Driver: sqlite
	// Web Port: 8080
}

// Example of setting the web port with validation
func ExampleConfig_SetWebPort() {
	cfg := config.Default()

	if err := cfg.SetWebPort(9090); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Port set to:", cfg.Web.Port)
	}

	if err := cfg.SetWebPort(70000); err != nil {
		fmt.Println("Error:", err)
	}

	// Output:
	// Port set to: 9090
	// Error: port must be between 1 and 65535, got 70000
}

// Example of validating configuration
func ExampleConfig_Validate() {
	cfg := config.Default()

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
	} else {
		fmt.Println("Configuration is valid")
	}

	cfg.Database.Driver = config.DriverPostgres
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
	}

	// Output:
	// Configuration is valid
	// Invalid config: postgres driver requires a DSN
}
