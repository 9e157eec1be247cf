package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var baseValidConfig = AppConfig{
	Server: ServerConfig{Port: 8080},
	Mongo: MongoConfig{
		URI:             "mongodb://localhost:27017",
		DBName:          "Loan_Prod",
		MinPoolSize:     5,
		MaxPoolSize:     20,
		MaxConnIdleTime: 25 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	},
	Redis: RedisConfig{
		Addr:           "localhost:6379",
		Password:       "pass",
		DB:             1,
		ConnectTimeout: 5 * time.Second,
	},
	Auth: AuthConfig{JWTSecret: "test-secret"},
	BankVerification: BankVerificationConfig{
		URL:            "https://kyc.example.com/verify",
		ClientID:       "cid",
		ClientSecret:   "csecret",
		RequestTimeout: 15 * time.Second,
	},
	Email: EmailConfig{
		URL:           "https://mail.example.com/v1.1/email",
		APIKey:        "key",
		SenderAddress: "noreply@example.com",
	},
	Scheduler: SchedulerConfig{
		DPDCronSpec:      "0 0 * * *",
		DefaultThreshold: 90,
	},
}

func writeTempConfig(t *testing.T, cfg AppConfig) string {
	t.Helper()
	data, _ := yaml.Marshal(cfg)
	tmp := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmp, data, 0644))
	return tmp
}

func TestValidateConfigErrors(t *testing.T) {
	t.Run("min pool size too low", func(t *testing.T) {
		c := baseValidConfig
		c.Mongo.MinPoolSize = 1
		assert.Error(t, validateConfig(&c))
	})

	t.Run("max pool size too high", func(t *testing.T) {
		c := baseValidConfig
		c.Mongo.MaxPoolSize = 100
		assert.Error(t, validateConfig(&c))
	})

	t.Run("max conn idle time out of range", func(t *testing.T) {
		c := baseValidConfig
		c.Mongo.MaxConnIdleTime = 5 * time.Minute
		assert.Error(t, validateConfig(&c))
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := baseValidConfig
		c.Auth.JWTSecret = ""
		assert.Error(t, validateConfig(&c))
	})

	t.Run("dpd threshold out of range", func(t *testing.T) {
		c := baseValidConfig
		c.Scheduler.DefaultThreshold = 5
		assert.Error(t, validateConfig(&c))
	})

	t.Run("base config is valid", func(t *testing.T) {
		c := baseValidConfig
		assert.NoError(t, validateConfig(&c))
	})
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("INT_KEY", "42")
	assert.Equal(t, 42, GetEnvOrDefaultAsInt("INT_KEY", 5))

	t.Setenv("INT_KEY", "not-a-number")
	assert.Equal(t, 5, GetEnvOrDefaultAsInt("INT_KEY", 5))

	assert.Equal(t, 7, GetEnvOrDefaultAsInt("INT_KEY_MISSING", 7))
}

func TestGetEnvAsUint64(t *testing.T) {
	t.Setenv("UINT_KEY", "12")
	assert.Equal(t, uint64(12), GetEnvOrDefaultAsUint64("UINT_KEY", 3))

	t.Setenv("UINT_KEY", "-1")
	assert.Equal(t, uint64(3), GetEnvOrDefaultAsUint64("UINT_KEY", 3))
}

func TestGetEnvAsString(t *testing.T) {
	t.Setenv("STR_KEY", "value")
	assert.Equal(t, "value", GetEnvOrDefaultAsString("STR_KEY", "fallback"))

	t.Setenv("STR_KEY", "   ")
	assert.Equal(t, "fallback", GetEnvOrDefaultAsString("STR_KEY", "fallback"))
}

func TestLoadFromConfigFilePath(t *testing.T) {
	t.Run("valid config file loads", func(t *testing.T) {
		path := writeTempConfig(t, baseValidConfig)

		cfg, err := LoadFromConfigFilePath(path)

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "Loan_Prod", cfg.Mongo.DBName)
		assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
		assert.Equal(t, 90, cfg.Scheduler.DefaultThreshold)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadFromConfigFilePath(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		tmp := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(tmp, []byte("server: [not: valid"), 0644))

		_, err := LoadFromConfigFilePath(tmp)
		require.Error(t, err)
	})

	t.Run("env override wins over file value", func(t *testing.T) {
		t.Setenv("MONGO_DB_NAME", "Loan_Staging")
		path := writeTempConfig(t, baseValidConfig)

		cfg, err := LoadFromConfigFilePath(path)

		require.NoError(t, err)
		assert.Equal(t, "Loan_Staging", cfg.Mongo.DBName)
	})
}
