package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Config holds all configuration
type Config struct {
	HTTPAddr string
	GinMode  string
	DNS      DNSConfig
	DKIM     DKIMConfig
	Log      LogConfig
}

// DNSConfig holds resolver configuration
type DNSConfig struct {
	Nameservers []string
	TimeoutSec  int
	Retries     int
}

// Timeout returns the per-query timeout
func (c DNSConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// DKIMConfig holds DKIM probing configuration
type DKIMConfig struct {
	Selectors []string // empty means the built-in list
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // text or json
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		GinMode:  getEnv("GIN_MODE", "release"),
		DNS: DNSConfig{
			Nameservers: splitList(getEnv("DNS_NAMESERVERS", "")),
			TimeoutSec:  getEnvInt("DNS_TIMEOUT_SEC", 5),
			Retries:     getEnvInt("DNS_RETRIES", 2),
		},
		DKIM: DKIMConfig{
			Selectors: splitList(getEnv("DKIM_SELECTORS", "")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromINI loads configuration from INI file with environment variable override
func LoadFromINI(iniPath string) (*Config, error) {
	cfgFile, err := ini.Load(iniPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load INI file: %w", err)
	}

	// Priority: ENV > INI > default
	getValue := func(envKey, iniSection, iniKey, defaultValue string) string {
		if value := os.Getenv(envKey); value != "" {
			return value
		}
		if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
			return value
		}
		return defaultValue
	}

	getValueInt := func(envKey, iniSection, iniKey string, defaultValue int) int {
		if value := os.Getenv(envKey); value != "" {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		if cfgFile.Section(iniSection).HasKey(iniKey) {
			if value, err := cfgFile.Section(iniSection).Key(iniKey).Int(); err == nil {
				return value
			}
		}
		return defaultValue
	}

	cfg := &Config{
		HTTPAddr: getValue("HTTP_ADDR", "http", "addr", ":8000"),
		GinMode:  getValue("GIN_MODE", "http", "gin_mode", "release"),
		DNS: DNSConfig{
			Nameservers: splitList(getValue("DNS_NAMESERVERS", "dns", "nameservers", "")),
			TimeoutSec:  getValueInt("DNS_TIMEOUT_SEC", "dns", "timeout_sec", 5),
			Retries:     getValueInt("DNS_RETRIES", "dns", "retries", 2),
		},
		DKIM: DKIMConfig{
			Selectors: splitList(getValue("DKIM_SELECTORS", "dkim", "selectors", "")),
		},
		Log: LogConfig{
			Level:  getValue("LOG_LEVEL", "log", "level", "info"),
			Format: getValue("LOG_FORMAT", "log", "format", "text"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.DNS.TimeoutSec <= 0 {
		return fmt.Errorf("DNS_TIMEOUT_SEC must be positive, got %d", c.DNS.TimeoutSec)
	}
	if c.DNS.Retries < 0 {
		return fmt.Errorf("DNS_RETRIES must not be negative, got %d", c.DNS.Retries)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// splitList splits a comma separated value, dropping empty entries
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
