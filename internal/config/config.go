package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	GinMode string
	Port    string
	TZ      string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	JWTSecret           string
	TokenTTL            time.Duration
	SessionTTL          time.Duration
	SessionCookieSecure bool
	LoginThrottle       time.Duration
	LoginMaxFailures    int

	RedisURL       string
	AllowedOrigins []string

	CloudinaryURL          string
	CloudinaryUploadFolder string
}

// findEnvFile walks up from the working directory looking for .env.dev.
func findEnvFile() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, ".env.dev")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func Load() *Config {
	if getenv("GIN_MODE", "debug") == "debug" {
		if envPath, ok := findEnvFile(); ok {
			if err := godotenv.Load(envPath); err != nil {
				log.Warn().Err(err).Str("path", envPath).Msg("could not load env file")
			} else {
				log.Info().Str("path", envPath).Msg("loaded env file")
			}
		}
	}

	cfg := &Config{
		GinMode: getenv("GIN_MODE", "debug"),
		Port:    getenv("PORT", "8080"),
		TZ:      getenv("TZ", "UTC"),

		DBDriver:   getenv("DB_DRIVER", "postgres"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPass:     getenv("DB_PASS", ""),
		DBName:     getenv("DB_NAME", "postgres"),
		DBSSLMode:  os.Getenv("DB_SSLMODE"),
		SQLitePath: getenv("SQLITE_PATH", "shelfshare.db"),

		JWTSecret:           getenv("JWT_SECRET", "change-me"),
		TokenTTL:            getduration("TOKEN_TTL", 24*time.Hour),
		SessionTTL:          getduration("SESSION_TTL", 14*24*time.Hour),
		SessionCookieSecure: getbool("SESSION_COOKIE_SECURE", false),
		LoginThrottle:       getduration("LOGIN_THROTTLE", 15*time.Minute),
		LoginMaxFailures:    getint("LOGIN_MAX_FAILURES", 5),

		RedisURL:       os.Getenv("REDIS_URL"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),

		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryUploadFolder: getenv("CLOUDINARY_UPLOAD_FOLDER", "profile_photos"),
	}

	if cfg.DBSSLMode == "" {
		if cfg.GinMode == "release" {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	if cfg.GinMode == "release" && cfg.JWTSecret == "change-me" {
		log.Warn().Msg("JWT_SECRET is not set; using the development default")
	}

	return cfg
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost,
		c.DBUser,
		c.DBPass,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
		c.TZ,
	)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("invalid duration, using default")
		return def
	}
	return d
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("invalid integer, using default")
		return def
	}
	return n
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
