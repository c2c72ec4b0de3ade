package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Seed struct {
		SuperAdminEmail    string `yaml:"super_admin_email" env:"SEED_SUPER_ADMIN_EMAIL"`
		SuperAdminPassword string `yaml:"super_admin_password" env:"SEED_SUPER_ADMIN_PASSWORD"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars can carry everything
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "deptportal"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "deptportal"

	config.Seed.SuperAdminEmail = "admin@dept.edu"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) {
	overrideString(&config.Server.Port, "SERVER_PORT")
	overrideString(&config.Server.Mode, "SERVER_MODE")

	overrideString(&config.Database.Host, "DB_HOST")
	overrideString(&config.Database.Port, "DB_PORT")
	overrideString(&config.Database.User, "DB_USER")
	overrideString(&config.Database.Password, "DB_PASSWORD")
	overrideString(&config.Database.DBName, "DB_NAME")
	overrideString(&config.Database.SSLMode, "DB_SSLMODE")
	overrideInt(&config.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS")
	overrideInt(&config.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS")
	overrideString(&config.Database.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME")

	overrideString(&config.JWT.Secret, "JWT_SECRET")
	overrideString(&config.JWT.AccessTokenExpiration, "JWT_ACCESS_TOKEN_EXPIRATION")
	overrideString(&config.JWT.RefreshTokenExpiration, "JWT_REFRESH_TOKEN_EXPIRATION")
	overrideString(&config.JWT.Issuer, "JWT_ISSUER")

	overrideString(&config.Seed.SuperAdminEmail, "SEED_SUPER_ADMIN_EMAIL")
	overrideString(&config.Seed.SuperAdminPassword, "SEED_SUPER_ADMIN_PASSWORD")

	overrideString(&config.Logging.Level, "LOG_LEVEL")
	overrideString(&config.Logging.Format, "LOG_FORMAT")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && value != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

// validateConfig checks required settings
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.JWT.Secret) == "" {
		return fmt.Errorf("JWT secret must be set (JWT_SECRET)")
	}
	if config.Database.MaxOpenConns < config.Database.MaxIdleConns {
		return fmt.Errorf("max_open_conns (%d) must not be smaller than max_idle_conns (%d)",
			config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	}
	return nil
}

// GetPostgresConnectionString builds the database connection string
func (c *Config) GetPostgresConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
