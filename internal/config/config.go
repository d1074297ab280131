package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreBackendSQLite = "sqlite"
	StoreBackendRedis  = "redis"

	DefaultGeminiModel    = "gemini-3-flash-preview"
	DefaultAdvisorTimeout = 30 * time.Second
	minSecretKeyLength    = 32
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port            string        `yaml:"port"`
	Timezone        string        `yaml:"timezone"`
	DefaultLanguage string        `yaml:"default_language"`
	LogMode         string        `yaml:"log_mode"`
	Store           StoreConfig   `yaml:"store"`
	Advisor         AdvisorConfig `yaml:"advisor"`
	Access          AccessConfig  `yaml:"access"`
}

type StoreConfig struct {
	Backend  string `yaml:"backend"`
	DBPath   string `yaml:"db_path"`
	RedisURL string `yaml:"redis_url"`
	Key      string `yaml:"key"`
}

type AdvisorConfig struct {
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Language string        `yaml:"language"`
}

type AccessConfig struct {
	PasscodeHash string `yaml:"passcode_hash"`
	SecretKey    string `yaml:"secret_key"`
	CookieSecure bool   `yaml:"cookie_secure"`
}

// Load reads an optional .env file, then the YAML file named by CONFIG_FILE,
// then environment variables, and finally fills defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Store.Backend {
	case StoreBackendSQLite, StoreBackendRedis:
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, cfg.Store.Backend)
	}
	if cfg.Advisor.Timeout <= 0 {
		return fmt.Errorf("%w: advisor timeout must be positive", ErrInvalidConfig)
	}
	if secret := cfg.Access.SecretKey; secret != "" && len(secret) < minSecretKeyLength {
		return fmt.Errorf("%w: SECRET_KEY must be at least %d characters", ErrInvalidConfig, minSecretKeyLength)
	}
	return nil
}

func (cfg *Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func (cfg *Config) AccessLockEnabled() bool {
	return strings.TrimSpace(cfg.Access.PasscodeHash) != ""
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.Timezone, "TZ")
	overrideString(&cfg.DefaultLanguage, "DEFAULT_LANGUAGE")
	overrideString(&cfg.LogMode, "LOG_MODE")

	overrideString(&cfg.Store.Backend, "STORE_BACKEND")
	overrideString(&cfg.Store.DBPath, "DB_PATH")
	overrideString(&cfg.Store.RedisURL, "REDIS_URL")
	overrideString(&cfg.Store.Key, "STORE_KEY")

	overrideString(&cfg.Advisor.APIKey, "GEMINI_API_KEY")
	overrideString(&cfg.Advisor.Model, "GEMINI_MODEL")
	overrideString(&cfg.Advisor.BaseURL, "GEMINI_BASE_URL")
	overrideString(&cfg.Advisor.Language, "ADVICE_LANGUAGE")
	if raw := strings.TrimSpace(os.Getenv("ADVISOR_TIMEOUT")); raw != "" {
		if timeout, err := time.ParseDuration(raw); err == nil {
			cfg.Advisor.Timeout = timeout
		}
	}

	overrideString(&cfg.Access.PasscodeHash, "ACCESS_PASSCODE_HASH")
	overrideString(&cfg.Access.SecretKey, "SECRET_KEY")
	if raw := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); raw != "" {
		if secure, err := strconv.ParseBool(raw); err == nil {
			cfg.Access.CookieSecure = secure
		}
	}
}

func applyDefaults(cfg *Config) {
	defaultString(&cfg.Port, "8080")
	defaultString(&cfg.Timezone, "UTC")
	defaultString(&cfg.DefaultLanguage, "en")
	defaultString(&cfg.LogMode, "dev")

	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	defaultString(&cfg.Store.Backend, StoreBackendSQLite)
	defaultString(&cfg.Store.DBPath, filepath.Join("data", "cyclecare.db"))
	defaultString(&cfg.Store.RedisURL, "redis://localhost:6379/0")
	defaultString(&cfg.Store.Key, "cycles")

	defaultString(&cfg.Advisor.Model, DefaultGeminiModel)
	defaultString(&cfg.Advisor.Language, "English")
	if cfg.Advisor.Timeout == 0 {
		cfg.Advisor.Timeout = DefaultAdvisorTimeout
	}
}

func overrideString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func defaultString(target *string, fallback string) {
	if strings.TrimSpace(*target) == "" {
		*target = fallback
	}
}
