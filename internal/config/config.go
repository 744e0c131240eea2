package config

import (
	"log/slog"
	"os"
)

// Config holds all environment-driven settings. It is built once in main
// and handed to the components that need it.
type Config struct {
	Port        string
	Env         string
	SecretKey   string
	DatabaseDSN string
	AdminEmail  string
	BaseURL     string

	MailServer   string
	MailPort     string
	MailUsername string
	MailPassword string

	PusherAppID   string
	PusherKey     string
	PusherSecret  string
	PusherCluster string
}

// Dev reports whether the server runs in development mode. New users are
// auto-confirmed and no confirmation mail is sent in dev mode.
func (c Config) Dev() bool {
	return c.Env == "DEV"
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "DEV"),
		SecretKey:   getEnv("SECRET_KEY", "dev-secret-change-in-production"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/dispatch?parseTime=true"),
		AdminEmail:  getEnv("ADMIN_EMAIL", ""),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),

		MailServer:   getEnv("MAIL_SERVER", ""),
		MailPort:     getEnv("MAIL_PORT", "587"),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),

		PusherAppID:   getEnv("PUSHER_APP_ID", ""),
		PusherKey:     getEnv("PUSHER_KEY", ""),
		PusherSecret:  getEnv("PUSHER_SECRET", ""),
		PusherCluster: getEnv("PUSHER_CLUSTER", "eu"),
	}

	if !cfg.Dev() && cfg.SecretKey == "dev-secret-change-in-production" {
		slog.Error("SECRET_KEY must be set outside of dev mode")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
