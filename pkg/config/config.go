package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// External API
	KIS KISConfig

	// Snapshot cache
	Cache CacheConfig

	// Redis (optional snapshot store backend)
	Redis RedisConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// KISConfig holds KIS (한국투자증권) open API configuration
type KISConfig struct {
	AppKey    string
	AppSecret string
	AccountNo string // 계좌번호 (코어 로직에서는 미사용, 패스스루)
	BaseURL   string
	UseLive   bool // 실시간 API 사용 여부 (기본: 샘플 데이터)

	// Request pacing: KIS 실전투자 한도는 초당 약 10건
	RateLimitPerSec int
}

// CacheConfig holds snapshot cache configuration
type CacheConfig struct {
	TTL time.Duration // 시세 스냅샷 캐시 유효시간
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		KIS: KISConfig{
			AppKey:          getEnv("KIS_APP_KEY", ""),
			AppSecret:       getEnv("KIS_APP_SECRET", ""),
			AccountNo:       getEnv("KIS_ACCOUNT_NO", ""),
			BaseURL:         getEnv("KIS_BASE_URL", "https://openapi.koreainvestment.com:9443"),
			UseLive:         getEnvAsBool("KIS_USE_LIVE", false),
			RateLimitPerSec: getEnvAsInt("KIS_RATE_LIMIT_PER_SEC", 10),
		},

		Cache: CacheConfig{
			TTL: getEnvAsDuration("SNAPSHOT_CACHE_TTL", "300s"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" && c.Env != "test" {
		return fmt.Errorf("ENV must be one of: development, staging, production, test")
	}

	// 실시간 모드여도 키가 없으면 샘플 데이터로 강등되므로 키 자체는 필수가 아님
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("SNAPSHOT_CACHE_TTL must be positive")
	}

	if c.KIS.RateLimitPerSec <= 0 {
		return fmt.Errorf("KIS_RATE_LIMIT_PER_SEC must be positive")
	}

	return nil
}

// HasCredentials reports whether both KIS credentials are present
func (k KISConfig) HasCredentials() bool {
	return k.AppKey != "" && k.AppSecret != ""
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
