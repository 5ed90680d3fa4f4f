package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	StoreBackend         string
	SaveDir              string
	RedisURL             string
	RedisPassword        string
	RedisDB              int
	SaveTTL              time.Duration
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	ReplayDelay          time.Duration
	AIDifficulty         string
	ExitOnGameOver       bool
	Color                bool
	ClearScreen          bool
	LogLevel             string
	LogFile              string
}

var AppConfig *Config

func LoadConfig() *Config {
	backend := strings.ToLower(GetEnv("STORE_BACKEND", BackendFile))
	switch backend {
	case BackendFile, BackendRedis, BackendPostgres:
	default:
		log.Printf("Unknown STORE_BACKEND %q, using %s", backend, BackendFile)
		backend = BackendFile
	}

	// Saves
	saveDir := GetEnv("SAVE_DIR", ".")
	saveTTLHours := GetEnvAsInt("SAVE_TTL_HOURS", 0)

	// Redis Config
	redisURL := GetEnv("REDIS_URL", "localhost:6379")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	redisDB := GetEnvAsInt("REDIS_DB", 0)

	// Database Config
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	dbMaxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 5)
	dbMaxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 2)
	dbConnMaxLifetimeMin := GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	// Terminal
	replayDelayMs := GetEnvAsInt("REPLAY_DELAY_MS", 500)
	color := GetEnvAsBool("COLOR", true)
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		color = false
	}

	AppConfig = &Config{
		StoreBackend:         backend,
		SaveDir:              saveDir,
		RedisURL:             redisURL,
		RedisPassword:        redisPassword,
		RedisDB:              redisDB,
		SaveTTL:              time.Duration(saveTTLHours) * time.Hour,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       dbMaxOpenConns,
		DBMaxIdleConns:       dbMaxIdleConns,
		DBConnMaxLifetimeMin: dbConnMaxLifetimeMin,
		ReplayDelay:          time.Duration(replayDelayMs) * time.Millisecond,
		AIDifficulty:         GetEnv("AI_DIFFICULTY", "medium"),
		ExitOnGameOver:       GetEnvAsBool("EXIT_ON_GAME_OVER", true),
		Color:                color,
		ClearScreen:          GetEnvAsBool("CLEAR_SCREEN", false),
		LogLevel:             GetEnv("LOG_LEVEL", "warn"),
		LogFile:              GetEnv("LOG_FILE", ""),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
