package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ProblemsPath string

	CodeforcesAPIURL  string
	CodeforcesTimeout time.Duration

	SyncQueueName      string
	SyncLockTTLSeconds int
	SyncWorkerEmbedded bool

	CORSAllowedOrigins []string
	LogLevel           string
}

var AppConfig *Config

// defaultJWTSecret is only accepted while AppEnv is development.
const defaultJWTSecret = "defaultsecret"

// Load reads .env (when present) and the environment into AppConfig.
func Load() error {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		APIPort:            getEnv("API_PORT", "8080"),
		JWTKey:             []byte(getEnv("JWT_SECRET", defaultJWTSecret)),
		JWTExp:             time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "user"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "cm_sheet"),
		DBSslMode:          getEnv("DB_SSLMODE", "disable"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		ProblemsPath:       getEnv("PROBLEMS_PATH", "data/problems.json"),
		CodeforcesAPIURL:   strings.TrimRight(getEnv("CODEFORCES_API_URL", "https://codeforces.com/api"), "/"),
		CodeforcesTimeout:  getEnvAsDuration("CODEFORCES_TIMEOUT", 15*time.Second),
		SyncQueueName:      getEnv("SYNC_QUEUE_NAME", "cmsheet:sync:queue"),
		SyncLockTTLSeconds: getEnvAsInt("SYNC_LOCK_TTL_SECONDS", 60),
		SyncWorkerEmbedded: getEnvAsBool("SYNC_WORKER_EMBEDDED", true),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	AppConfig = cfg
	return nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.APIPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid API port: %q", c.APIPort)
	}
	if len(c.JWTKey) == 0 {
		return errors.New("JWT secret is required")
	}
	if !c.IsDevelopment() && string(c.JWTKey) == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set when APP_ENV is %q", c.AppEnv)
	}
	if c.JWTExp <= 0 {
		return errors.New("JWT expiration must be positive")
	}
	if c.ProblemsPath == "" {
		return errors.New("problems path is required")
	}
	if c.CodeforcesAPIURL == "" {
		return errors.New("codeforces API URL is required")
	}
	if c.CodeforcesTimeout <= 0 {
		return fmt.Errorf("invalid codeforces timeout: %s", c.CodeforcesTimeout)
	}
	if c.SyncLockTTLSeconds <= 0 {
		return fmt.Errorf("invalid sync lock TTL: %d", c.SyncLockTTLSeconds)
	}
	// the busy flag must outlive the slowest submission fetch
	if c.SyncLockTTL() <= c.CodeforcesTimeout {
		return fmt.Errorf("sync lock TTL (%s) must exceed the codeforces timeout (%s)", c.SyncLockTTL(), c.CodeforcesTimeout)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "" || c.AppEnv == "development"
}

func (c *Config) SyncLockTTL() time.Duration {
	return time.Duration(c.SyncLockTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
