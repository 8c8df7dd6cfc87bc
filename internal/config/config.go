package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Odoo    OdooConfig    `mapstructure:"odoo"`
	Logging LoggingConfig `mapstructure:"logging"`
	Fields  FieldsConfig  `mapstructure:"fields"`
}

// ServerConfig defines how the MCP tool server is exposed
type ServerConfig struct {
	Address   string `mapstructure:"address"`   // Listen address for SSE transport (e.g., ":8080")
	Transport string `mapstructure:"transport"` // "sse" or "stdio"
}

// OdooConfig defines the connection to the Odoo business-records server
type OdooConfig struct {
	URL            string        `mapstructure:"url"`      // Base URL (https://crm.example.com)
	Database       string        `mapstructure:"database"` // Odoo database name
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"` // Password or API key
	Timeout        time.Duration `mapstructure:"timeout"`
	DefaultLimit   int           `mapstructure:"default_limit"`   // Default record cap for list calls
	MaxLimit       int           `mapstructure:"max_limit"`       // Hard cap applied over caller limits
	WonProbability float64       `mapstructure:"won_probability"` // Probability treated as "won" in dashboard stats
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format     string `mapstructure:"format"` // "json" or "text"
	OutputFile string `mapstructure:"output_file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// FieldsConfig points at an optional deployment-specific custom-field
// mapping file merged over the built-in table.
type FieldsConfig struct {
	MappingFile string `mapstructure:"mapping_file"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Environment variable support: odoo.database -> CRMGW_ODOO_DATABASE
	viper.SetEnvPrefix("CRMGW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; env vars and defaults are enough
		// to run against a local Odoo instance.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.transport", "sse")
	viper.SetDefault("odoo.url", "http://localhost:8069")
	// Empty defaults keep the keys visible to viper so env-only
	// deployments can set credentials without a config file.
	viper.SetDefault("odoo.database", "")
	viper.SetDefault("odoo.username", "")
	viper.SetDefault("odoo.password", "")
	viper.SetDefault("odoo.timeout", "30s")
	viper.SetDefault("odoo.default_limit", 100)
	viper.SetDefault("odoo.max_limit", 1000)
	viper.SetDefault("odoo.won_probability", 100)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.output_file", "./logs/crm-gateway.log")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)
	viper.SetDefault("fields.mapping_file", "")
}

// Validate checks that the configuration is internally consistent.
// Odoo credentials are not required here so test setups can build
// configs without them.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case "sse", "stdio":
	default:
		return fmt.Errorf("invalid server.transport %q: must be \"sse\" or \"stdio\"", c.Server.Transport)
	}
	if c.Odoo.DefaultLimit <= 0 {
		return fmt.Errorf("odoo.default_limit must be positive, got %d", c.Odoo.DefaultLimit)
	}
	if c.Odoo.MaxLimit < c.Odoo.DefaultLimit {
		return fmt.Errorf("odoo.max_limit (%d) must be >= odoo.default_limit (%d)", c.Odoo.MaxLimit, c.Odoo.DefaultLimit)
	}
	return nil
}
