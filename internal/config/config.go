package config

import "os"

type Config struct {
	ServerPort         string
	DatabaseURL        string
	StravaClientID     string
	StravaClientSecret string
	StravaVerifyToken  string
	WebhookURL         string
	WhatsAppAPIURL     string
	WhatsAppGroupID    string
	Timezone           string
}

func Load() *Config {
	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8000"),
		DatabaseURL:        getEnv("DATABASE_URL", "data/strava_runs.db"),
		StravaClientID:     getEnv("STRAVA_CLIENT_ID", ""),
		StravaClientSecret: getEnv("STRAVA_CLIENT_SECRET", ""),
		StravaVerifyToken:  getEnv("STRAVA_VERIFY_TOKEN", ""),
		WebhookURL:         getEnv("WEBHOOK_URL", "http://localhost:8000"),
		WhatsAppAPIURL:     getEnv("WHATSAPP_API_URL", "http://localhost:3000"),
		WhatsAppGroupID:    getEnv("WHATSAPP_GROUP_ID", ""),
		Timezone:           getEnv("TIMEZONE", "America/Sao_Paulo"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
