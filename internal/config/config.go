package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPath            string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	SessionSecret     string
	GinMode           string
	LogLevel          string
	ServerPort        string
	JWTSecret         string
	TokenTTLMinutes   int
	BcryptCost        int
	NotifyChannel     string
	SeedAdminEmail    string
	SeedAdminPassword string
}

func Load() *Config {
	// A missing .env file is fine; the environment still wins.
	_ = godotenv.Load()

	return &Config{
		DBDriver:          getEnv("DB_DRIVER", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBUser:            getEnv("DB_USER", "timeuser"),
		DBPassword:        getEnv("DB_PASSWORD", "timepassword"),
		DBName:            getEnv("DB_NAME", "time_management"),
		DBPath:            getEnv("DB_PATH", "time_management.db"),
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		SessionSecret:     getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		TokenTTLMinutes:   getEnvAsInt("TOKEN_TTL_MINUTES", 60*24),
		BcryptCost:        getEnvAsInt("BCRYPT_COST", 10),
		NotifyChannel:     getEnv("NOTIFY_CHANNEL", "task-notifications"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

// RedisAddr returns host:port for both the session store and the notifier.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
