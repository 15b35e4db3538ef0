package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	CORSOrigins []string

	NotifyDriver string // "log" (default) or "smtp"
	SMTPAddr     string
	SMTPFrom     string
}

func LoadEnv() Env {
	// .env is optional; deployments usually set the environment directly.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	env := Env{
		AppAddr:      appAddr,
		GinMode:      strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:       getenvDefault("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       getenvDefault("DB_HOST", "127.0.0.1:3306"),
		DBName:       getenvDefault("DB_NAME", "travelbook"),
		JWTSecret:    getenvDefault("JWT_SECRET", "super-secret-key-change-me"),
		NotifyDriver: getenvDefault("NOTIFY_DRIVER", "log"),
		SMTPAddr:     strings.TrimSpace(os.Getenv("SMTP_ADDR")),
		SMTPFrom:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	return env
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
