package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	MinPasswordLength int    `yaml:"min_password_length"`
	BcryptCost        int    `yaml:"bcrypt_cost"`
	SessionTTL        string `yaml:"session_ttl"`
	RollingSessions   bool   `yaml:"rolling_sessions"`
	ThrottleThreshold int    `yaml:"throttle_threshold"`
	ThrottleWindow    string `yaml:"throttle_window"`
	AttemptRetention  string `yaml:"attempt_retention"`
	CarrierSecret     string `yaml:"carrier_secret"`
	CarrierIssuer     string `yaml:"carrier_issuer"`
	CookieName        string `yaml:"cookie_name"`
	CookieSecure      bool   `yaml:"cookie_secure"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
}

// Config is the resolved runtime configuration. Everything the services need
// is passed in through here; there are no ambient singletons.
type Config struct {
	Port              string
	GinMode           string
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	MinPasswordLength int
	BcryptCost        int
	SessionTTL        time.Duration
	RollingSessions   bool
	ThrottleThreshold int
	ThrottleWindow    time.Duration
	AttemptRetention  time.Duration
	CarrierSecret     string
	CarrierIssuer     string
	CookieName        string
	CookieSecure      bool
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the YAML config file and applies environment overrides for the
// deployment-specific values (DSN, Redis address, carrier secret).
func Load() (*Config, error) {
	path := env("PRAXIDA_CONFIG", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	throttleWindow, err := time.ParseDuration(configFile.Auth.ThrottleWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid throttle window: %w", err)
	}

	attemptRetention, err := time.ParseDuration(configFile.Auth.AttemptRetention)
	if err != nil {
		return nil, fmt.Errorf("invalid attempt retention: %w", err)
	}

	secret := env("PRAXIDA_CARRIER_SECRET", configFile.Auth.CarrierSecret)
	if secret == "" {
		return nil, fmt.Errorf("carrier secret must not be empty")
	}

	cfg := &Config{
		Port:              fmt.Sprintf("%d", configFile.App.Port),
		GinMode:           configFile.App.GinMode,
		DSN:               env("PRAXIDA_DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:         env("PRAXIDA_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:     env("PRAXIDA_REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:           configFile.Redis.DB,
		MinPasswordLength: configFile.Auth.MinPasswordLength,
		BcryptCost:        configFile.Auth.BcryptCost,
		SessionTTL:        sessionTTL,
		RollingSessions:   configFile.Auth.RollingSessions,
		ThrottleThreshold: configFile.Auth.ThrottleThreshold,
		ThrottleWindow:    throttleWindow,
		AttemptRetention:  attemptRetention,
		CarrierSecret:     secret,
		CarrierIssuer:     configFile.Auth.CarrierIssuer,
		CookieName:        configFile.Auth.CookieName,
		CookieSecure:      configFile.Auth.CookieSecure,
	}

	if cfg.MinPasswordLength <= 0 {
		cfg.MinPasswordLength = 10
	}
	if cfg.ThrottleThreshold <= 0 {
		cfg.ThrottleThreshold = 5
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "praxida_session"
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
