package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Logger  LoggerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int
	Host        string
	MetricsPort int
}

// GatewayConfig holds Orbital gateway configuration
type GatewayConfig struct {
	Login            string // Connection username
	Password         string // Connection password
	MerchantID       string
	TerminalID       string // Defaults to "001"
	IPAuthentication bool   // Source-IP auth drops the credential elements
	CustomerProfiles bool
	DefaultCurrency  string // Alpha currency or country code (e.g. USD, CA)
	TestMode         bool
	Timeout          int // Request timeout in seconds (default: 30)

	// Endpoint overrides; the certification/production pairs are used
	// when empty.
	PrimaryTestURL   string
	SecondaryTestURL string
	PrimaryLiveURL   string
	SecondaryLiveURL string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		},
		Gateway: GatewayConfig{
			Login:            getEnv("ORBITAL_LOGIN", ""),
			Password:         getEnv("ORBITAL_PASSWORD", ""),
			MerchantID:       getEnv("ORBITAL_MERCHANT_ID", ""),
			TerminalID:       getEnv("ORBITAL_TERMINAL_ID", "001"),
			IPAuthentication: getEnvAsBool("ORBITAL_IP_AUTHENTICATION", false),
			CustomerProfiles: getEnvAsBool("ORBITAL_CUSTOMER_PROFILES", false),
			DefaultCurrency:  getEnv("ORBITAL_DEFAULT_CURRENCY", "USD"),
			TestMode:         getEnvAsBool("ORBITAL_TEST_MODE", true),
			Timeout:          getEnvAsInt("ORBITAL_TIMEOUT", 30),
			PrimaryTestURL:   getEnv("ORBITAL_PRIMARY_TEST_URL", ""),
			SecondaryTestURL: getEnv("ORBITAL_SECONDARY_TEST_URL", ""),
			PrimaryLiveURL:   getEnv("ORBITAL_PRIMARY_LIVE_URL", ""),
			SecondaryLiveURL: getEnv("ORBITAL_SECONDARY_LIVE_URL", ""),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	if cfg.Gateway.MerchantID == "" {
		return nil, fmt.Errorf("ORBITAL_MERCHANT_ID is required")
	}
	if !cfg.Gateway.IPAuthentication {
		if cfg.Gateway.Login == "" {
			return nil, fmt.Errorf("ORBITAL_LOGIN is required unless ORBITAL_IP_AUTHENTICATION is set")
		}
		if cfg.Gateway.Password == "" {
			return nil, fmt.Errorf("ORBITAL_PASSWORD is required unless ORBITAL_IP_AUTHENTICATION is set")
		}
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
