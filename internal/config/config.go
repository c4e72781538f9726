package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration
	JWTHeader string
	JWTPrefix string

	// File upload
	UploadDir         string
	UploadBaseURL     string
	UploadMaxSize     int64
	UploadAllowedExts []string

	// Bootstrap sysadmin (created at startup when none exists)
	SysadminUsername string
	SysadminEmail    string
	SysadminPassword string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "lostfound_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h")),
		JWTHeader: getEnv("JWT_HEADER", "Authorization"),
		JWTPrefix: getEnv("JWT_PREFIX", "Bearer"),

		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		UploadBaseURL:     getEnv("UPLOAD_BASE_URL", "/uploads"),
		UploadMaxSize:     parseInt64(getEnv("UPLOAD_MAX_SIZE", "5242880")),
		UploadAllowedExts: parseCSV(getEnv("UPLOAD_ALLOWED_EXTS", ".jpg,.jpeg,.png,.gif,.webp")),

		SysadminUsername: getEnv("SYSADMIN_USERNAME", "sysadmin"),
		SysadminEmail:    getEnv("SYSADMIN_EMAIL", "sysadmin@example.com"),
		SysadminPassword: getEnv("SYSADMIN_PASSWORD", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 5 << 20
	}
	return n
}

func parseCSV(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, strings.ToLower(trimmed))
		}
	}
	return result
}
