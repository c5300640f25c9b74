package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Admin
	AdminEmail    string
	AdminPassword string
	AdminEmails   string

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
	SentryDSN   string

	// Kitchen
	KitchenTimezone string
	Location        *time.Location
	Bank            BankDetails

	// Messaging
	AMQPURL string
}

// BankDetails are shown to subscribers who pay by bank transfer.
type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
	SwiftCode     string `json:"swift_code"`
}

// Load reads configuration from the environment, after loading .env if one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "error", err)
	}

	cfg := &Config{
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "kerala_kitchen"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "kitchen.db"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminEmails:   getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),

		KitchenTimezone: getEnv("KITCHEN_TIMEZONE", "Asia/Dubai"),
		Bank: BankDetails{
			BankName:      getEnv("BANK_NAME", "Emirates NBD"),
			AccountName:   getEnv("BANK_ACCOUNT_NAME", "Ajman Kerala Kitchen LLC"),
			AccountNumber: getEnv("BANK_ACCOUNT_NUMBER", "1234567890123456"),
			IBAN:          getEnv("BANK_IBAN", "AE070260001234567890123"),
			SwiftCode:     getEnv("BANK_SWIFT", "EBILAEAD"),
		},

		AMQPURL: getEnv("AMQP_URL", ""),
	}
	cfg.Location = loadLocation(cfg.KitchenTimezone)
	return cfg
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

// AdminEmailList is ADMIN_EMAILS split on commas, plus the seeded ADMIN_EMAIL.
func (c *Config) AdminEmailList() []string {
	out := parseCSV(c.AdminEmails)
	if c.AdminEmail != "" {
		out = append(out, strings.ToLower(c.AdminEmail))
	}
	return out
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("unknown KITCHEN_TIMEZONE, falling back to UTC+4", "timezone", name, "error", err)
		return time.FixedZone("GST", 4*60*60)
	}
	return loc
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
