package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var errMissingSecret = errors.New("JWT_SECRET_KEY must be set in production")

// AppConfig holds the application configuration.
type AppConfig struct {
	DBDriver           string
	DBPath             string
	DBHost             string
	DBPort             int
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	DBTimezone         string
	DBAutoMigrate      bool
	ServerPort         int
	ServerHost         string
	ServerFramework    string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	AppEnv             string
	LogLevel           string
	LogFile            string
	LogFileMaxSizeMB   int
	LogFileMaxBackups  int
	LogFileMaxAgeDays  int
	AppName            string
	CorsAllowedOrigins []string
	RateLimitPerSecond float64 // For middleware
	RateLimitBurst     int     // For middleware
	SwaggerHost        string
	SwaggerBasePath    string
	SwaggerSchemes     []string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	CacheTTLExpiration time.Duration

	// Auth
	JWTSecretKey      string
	JWTAlgorithm      string
	AccessTokenExpire time.Duration

	// AI provider
	LLMProvider             string
	GoogleAPIKey            string
	GeminiModel             string
	OpenAIAPIKey            string
	OpenAIModel             string
	OpenAIBaseURL           string
	AITemperature           float64
	AIMaxTokens             int
	AIArticleMaxTokens      int
	AICallTimeout           time.Duration
	PipelineShutdownTimeout time.Duration
}

// LoadConfig loads configuration from .env file or environment variables.
func LoadConfig(envFile ...string) (*AppConfig, error) {
	if len(envFile) > 0 && envFile[0] != "" {
		if _, err := os.Stat(envFile[0]); err == nil {
			err := godotenv.Load(envFile[0])
			if err != nil {
				log.Printf("Warning: Could not load .env file: %v. Using environment variables or defaults.", err)
			}
		} else {
			log.Printf("Warning: Specified .env file %s not found. Using environment variables or defaults.", envFile[0])
		}
	} else {
		// Try loading default .env file if no specific file is provided
		if _, err := os.Stat("config.env"); err == nil {
			err := godotenv.Load("config.env")
			if err != nil {
				log.Printf("Warning: Could not load default config.env file: %v. Using environment variables or defaults.", err)
			}
		}
	}

	cfg := &AppConfig{
		DBDriver:           strings.ToLower(getStringEnv("DB_DRIVER", "postgres")),
		DBPath:             getStringEnv("DB_PATH", "mindful_journal.db"),
		DBHost:             getStringEnv("DB_HOST", "localhost"),
		DBPort:             getIntEnv("DB_PORT", 5432),
		DBUser:             getStringEnv("DB_USER", "postgres"),
		DBPassword:         getStringEnv("DB_PASSWORD", "password"),
		DBName:             getStringEnv("DB_NAME", "mindful_journal"),
		DBSslMode:          getStringEnv("DB_SSL_MODE", "disable"),
		DBTimezone:         getStringEnv("DB_TIMEZONE", "UTC"),
		DBAutoMigrate:      getBoolEnv("DB_AUTO_MIGRATE", true),
		ServerPort:         getIntEnv("SERVER_PORT", 8080),
		ServerHost:         getStringEnv("SERVER_HOST", "0.0.0.0"),
		ServerFramework:    strings.ToLower(getStringEnv("SERVER_FRAMEWORK", "gin")),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", "15s"),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", "15s"),
		ServerIdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", "60s"),
		AppEnv:             strings.ToLower(getStringEnv("APP_ENV", "development")),
		LogLevel:           strings.ToLower(getStringEnv("LOG_LEVEL", "info")),
		LogFile:            getStringEnv("LOG_FILE", ""),
		LogFileMaxSizeMB:   getIntEnv("LOG_FILE_MAX_SIZE_MB", 100),
		LogFileMaxBackups:  getIntEnv("LOG_FILE_MAX_BACKUPS", 30),
		LogFileMaxAgeDays:  getIntEnv("LOG_FILE_MAX_AGE_DAYS", 90),
		AppName:            getStringEnv("APP_NAME", "Mindful Journal"),
		CorsAllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		RateLimitPerSecond: getFloatEnv("RATE_LIMIT_RPS", 10), // Requests per second for limiter
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 20), // Burst for limiter
		SwaggerHost:        getStringEnv("SWAGGER_HOST", "localhost:8080"),
		SwaggerBasePath:    getStringEnv("SWAGGER_BASE_PATH", "/"),
		SwaggerSchemes:     getSliceEnv("SWAGGER_SCHEMES", "http,https"),
		RedisAddr:          getStringEnv("REDIS_ADDR", ""), // Empty disables the cache
		RedisPassword:      getStringEnv("REDIS_PASSWORD", ""),
		RedisDB:            getIntEnv("REDIS_DB", 0),
		CacheTTLExpiration: getDurationEnv("CACHE_TTL_EXPIRATION", "5m"),

		JWTSecretKey:      getStringEnv("JWT_SECRET_KEY", ""),
		JWTAlgorithm:      strings.ToUpper(getStringEnv("JWT_ALGORITHM", "HS256")),
		AccessTokenExpire: getDurationEnv("ACCESS_TOKEN_EXPIRE", "30m"),

		LLMProvider:             strings.ToLower(getStringEnv("LLM_PROVIDER", "gemini")),
		GoogleAPIKey:            getStringEnv("GOOGLE_API_KEY", ""),
		GeminiModel:             getStringEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:            getStringEnv("OPENAI_API_KEY", ""),
		OpenAIModel:             getStringEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:           getStringEnv("OPENAI_BASE_URL", ""),
		AITemperature:           getFloatEnv("AI_TEMPERATURE", 0.5),
		AIMaxTokens:             getIntEnv("AI_MAX_TOKENS", 300),
		AIArticleMaxTokens:      getIntEnv("AI_ARTICLE_MAX_TOKENS", 1024),
		AICallTimeout:           getDurationEnv("AI_CALL_TIMEOUT", "30s"),
		PipelineShutdownTimeout: getDurationEnv("PIPELINE_SHUTDOWN_TIMEOUT", "30s"),
	}

	// Validate framework choice
	if cfg.ServerFramework != "fiber" && cfg.ServerFramework != "gin" {
		log.Printf("Warning: Invalid SERVER_FRAMEWORK '%s'. Defaulting to 'gin'.", cfg.ServerFramework)
		cfg.ServerFramework = "gin"
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		log.Printf("Warning: Invalid DB_DRIVER '%s'. Defaulting to 'postgres'.", cfg.DBDriver)
		cfg.DBDriver = "postgres"
	}

	// Validate APP_ENV
	validAppEnvs := map[string]bool{"development": true, "staging": true, "production": true, "test": true}
	if !validAppEnvs[cfg.AppEnv] {
		log.Printf("Warning: Invalid APP_ENV '%s'. Defaulting to 'development'.", cfg.AppEnv)
		cfg.AppEnv = "development"
	}

	if cfg.JWTAlgorithm != "HS256" {
		log.Printf("Warning: Unsupported JWT_ALGORITHM '%s'. Defaulting to 'HS256'.", cfg.JWTAlgorithm)
		cfg.JWTAlgorithm = "HS256"
	}
	if cfg.JWTSecretKey == "" {
		if cfg.AppEnv == "production" {
			return nil, errMissingSecret
		}
		log.Printf("Warning: JWT_SECRET_KEY not set. Using an insecure development key.")
		cfg.JWTSecretKey = "insecure-development-key"
	}

	if len(cfg.CorsAllowedOrigins) == 0 {
		cfg.CorsAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

func getStringEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid value for %s: %s. Using default %d.", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid bool value for %s: %s. Using default %t.", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getDurationEnv(key, defaultValue string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s: %s. Using default %s.", key, valueStr, defaultValue)
		defaultDur, _ := time.ParseDuration(defaultValue)
		return defaultDur
	}
	return value
}

func getSliceEnv(key, defaultValue string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		valueStr = defaultValue
	}
	if valueStr == "" {
		return []string{}
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s: %s. Using default %f.", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
