package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Discord DiscordConfig
	Session SessionConfig
	Redis   RedisConfig
	API     APIConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DataConfig struct {
	Dir       string
	UploadDir string
	StaticDir string
}

type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type SessionConfig struct {
	Secret      string
	CookieName  string
	ExpiryHours int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type APIConfig struct {
	RateLimitWritesPerSec int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	sessionExpiry, err := strconv.Atoi(getEnv("SESSION_EXPIRY_HOURS", "168"))
	if err != nil {
		sessionExpiry = 168
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_WRITES_PER_SECOND", "5"))
	if err != nil {
		rateLimit = 5
	}

	origins := strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",")

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Data: DataConfig{
			Dir:       getEnv("DATA_DIR", "data"),
			UploadDir: getEnv("UPLOAD_DIR", "asset/uploads"),
			StaticDir: getEnv("STATIC_DIR", ""),
		},
		Discord: DiscordConfig{
			ClientID:     getEnv("DISCORD_CLIENT_ID", ""),
			ClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("DISCORD_CALLBACK_URL", "http://localhost:3000/api/auth/discord/callback"),
		},
		Session: SessionConfig{
			Secret:      getEnv("SESSION_SECRET", "change-this-secret-key"),
			CookieName:  getEnv("SESSION_COOKIE_NAME", "gamehub_session"),
			ExpiryHours: sessionExpiry,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		API: APIConfig{
			RateLimitWritesPerSec: rateLimit,
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
	}

	// Validate required fields
	if cfg.Session.Secret == "change-this-secret-key" && cfg.Server.Env == "production" {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}
	if cfg.Server.Env == "production" && (cfg.Discord.ClientID == "" || cfg.Discord.ClientSecret == "") {
		return nil, fmt.Errorf("DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET must be set in production")
	}

	return cfg, nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
