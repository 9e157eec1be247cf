package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"collections-service/internal/pkg/logger"
)

// ServerConfig holds server-level config
type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	LogLevel string `yaml:"level"`
}

// MongoDB connection config
type MongoConfig struct {
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	URI             string        `yaml:"uri"`
	DBName          string        `yaml:"db_name"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_minutes"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout_seconds"`
}

// Redis connection config
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// BankVerificationConfig points at the KYC provider's account-verification
// endpoint.
type BankVerificationConfig struct {
	URL            string        `yaml:"url"`
	ClientID       string        `yaml:"client_id"`
	ClientSecret   string        `yaml:"client_secret"`
	RequestTimeout time.Duration `yaml:"request_timeout_seconds"`
}

// EmailConfig points at the transactional email provider.
type EmailConfig struct {
	URL            string        `yaml:"url"`
	APIKey         string        `yaml:"api_key"`
	SenderAddress  string        `yaml:"sender_address"`
	PortalLink     string        `yaml:"portal_link"`
	RequestTimeout time.Duration `yaml:"request_timeout_seconds"`
}

type SchedulerConfig struct {
	DPDCronSpec      string `yaml:"dpd_cron_spec"`
	DefaultThreshold int    `yaml:"default_threshold_days"`
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server           ServerConfig           `yaml:"server"`
	Mongo            MongoConfig            `yaml:"mongo"`
	Redis            RedisConfig            `yaml:"redis"`
	Auth             AuthConfig             `yaml:"auth"`
	BankVerification BankVerificationConfig `yaml:"bank_verification"`
	Email            EmailConfig            `yaml:"email"`
	Scheduler        SchedulerConfig        `yaml:"scheduler"`
	Logging          LogConfig              `yaml:"logging"`
}

func assignDefaultConfigValues(cfg *AppConfig) *AppConfig {

	// server config defaults
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", cfg.Server.Port)

	// log config defaults
	cfg.Logging.LogLevel = GetEnvOrDefaultAsString("LOGGING_LEVEL", "info")

	// MongoDB config defaults
	cfg.Mongo.URI = GetEnvOrDefaultAsString("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.DBName = GetEnvOrDefaultAsString("MONGO_DB_NAME", cfg.Mongo.DBName)
	cfg.Mongo.Username = GetEnvOrDefaultAsString("MONGO_USERNAME", cfg.Mongo.Username)
	cfg.Mongo.Password = GetEnvOrDefaultAsString("MONGO_PASSWORD", cfg.Mongo.Password)
	cfg.Mongo.MaxPoolSize = GetEnvOrDefaultAsUint64("MONGO_MAX_POOL_SIZE", cfg.Mongo.MaxPoolSize)
	cfg.Mongo.MinPoolSize = GetEnvOrDefaultAsUint64("MONGO_MIN_POOL_SIZE", cfg.Mongo.MinPoolSize)
	cfg.Mongo.MaxConnIdleTime = time.Duration(GetEnvOrDefaultAsInt("MONGO_MAX_CONN_IDLE_MINUTES", 30)) * time.Minute
	cfg.Mongo.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second

	// Redis config defaults
	cfg.Redis.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.EnableTLS = GetEnvOrDefaultAsInt("REDIS_ENABLE_TLS", 0) == 1
	cfg.Redis.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("REDIS_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second

	// Auth config defaults
	cfg.Auth.JWTSecret = GetEnvOrDefaultAsString("JWT_SECRET", cfg.Auth.JWTSecret)

	// Bank verification config defaults
	cfg.BankVerification.URL = GetEnvOrDefaultAsString("BANK_VERIFICATION_URL", cfg.BankVerification.URL)
	cfg.BankVerification.ClientID = GetEnvOrDefaultAsString("SCOREME_CLIENT_ID", cfg.BankVerification.ClientID)
	cfg.BankVerification.ClientSecret = GetEnvOrDefaultAsString("SCOREME_CLIENT_SECRET",
		cfg.BankVerification.ClientSecret)
	cfg.BankVerification.RequestTimeout = time.Duration(
		GetEnvOrDefaultAsInt("BANK_VERIFICATION_TIMEOUT_SECONDS", 15)) * time.Second

	// Email config defaults
	cfg.Email.URL = GetEnvOrDefaultAsString("EMAIL_URL", cfg.Email.URL)
	cfg.Email.APIKey = GetEnvOrDefaultAsString("EMAIL_API_KEY", cfg.Email.APIKey)
	cfg.Email.SenderAddress = GetEnvOrDefaultAsString("EMAIL_SENDER_ADDRESS", cfg.Email.SenderAddress)
	cfg.Email.PortalLink = GetEnvOrDefaultAsString("EMAIL_PORTAL_LINK", cfg.Email.PortalLink)
	cfg.Email.RequestTimeout = time.Duration(GetEnvOrDefaultAsInt("EMAIL_TIMEOUT_SECONDS", 15)) * time.Second

	// Scheduler config defaults
	cfg.Scheduler.DPDCronSpec = GetEnvOrDefaultAsString("DPD_CRON_SPEC", cfg.Scheduler.DPDCronSpec)
	cfg.Scheduler.DefaultThreshold = GetEnvOrDefaultAsInt("DPD_DEFAULT_THRESHOLD_DAYS", 90)

	return cfg

}

// LoadFromConfigFilePath loads and parses the config file into AppConfig
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {

	// #nosec G304: configPath comes from deployment config, not user input
	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", err, slog.String("path", configPath))
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to unmarshal config", err)
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultCfg := assignDefaultConfigValues(&cfg)

	if err := validateConfig(defaultCfg); err != nil {
		logger.Error("Config validation failed", err)
		return nil, err
	}

	logger.Info("Configuration loaded successfully", slog.String("path", configPath))

	return defaultCfg, nil
}

func validateConfig(cfg *AppConfig) error {
	// Validate MongoConfig
	mongo := cfg.Mongo
	if mongo.MinPoolSize < 5 || mongo.MinPoolSize > 10 {
		return fmt.Errorf("mongo.min_pool_size must be between 5 and 10, got %d", mongo.MinPoolSize)
	}
	if mongo.MaxPoolSize < 10 || mongo.MaxPoolSize > 50 {
		return fmt.Errorf("mongo.max_pool_size must be between 10 and 50, got %d", mongo.MaxPoolSize)
	}

	minIdle := 20 * time.Minute
	maxIdle := 30 * time.Minute
	if mongo.MaxConnIdleTime < minIdle || mongo.MaxConnIdleTime > maxIdle {
		return fmt.Errorf("mongo.max_conn_idle_minutes must be between %v and %v, got %v",
			minIdle,
			maxIdle,
			mongo.MaxConnIdleTime)
	}

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must be set")
	}

	scheduler := cfg.Scheduler
	if scheduler.DefaultThreshold < 30 || scheduler.DefaultThreshold > 180 {
		return fmt.Errorf("scheduler.default_threshold_days must be between 30 and 180, got %d",
			scheduler.DefaultThreshold)
	}

	return nil
}

// GetEnvOrDefaultAsInt returns the value of the given env variable
// as an int or the default value if not set or invalid.
func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return int(value)
}

// GetEnvOrDefaultAsUint64 returns the value of the env variable
// as uint64 or the default value if not set or invalid.
func GetEnvOrDefaultAsUint64(key string, defaultValue uint64) uint64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(val) != "" {
			return val
		}
	}
	return defaultVal
}

// LoadFromConfig resolves the config file path from the environment and
// loads it.
func LoadFromConfig() (*AppConfig, error) {
	configPath := GetEnvOrDefaultAsString("CONFIG_PATH", "configs/config.yaml")

	cfg, err := LoadFromConfigFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	return cfg, nil
}
