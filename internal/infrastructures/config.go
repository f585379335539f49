package infrastructures

import (
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DATABASE_URL       string
	REDIS_ADDRESS      string
	REDIS_PASSWORD     string
	TELEGRAM_BASE_URL  string
	TELEGRAM_BOT_TOKEN string
	TELEGRAM_CHAT_ID   string
	PORT               string
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		DATABASE_URL:       os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:      os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD:     os.Getenv("REDIS_PASSWORD"),
		TELEGRAM_BASE_URL:  os.Getenv("TELEGRAM_BASE_URL"),
		TELEGRAM_BOT_TOKEN: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TELEGRAM_CHAT_ID:   os.Getenv("TELEGRAM_CHAT_ID"),
		PORT:               os.Getenv("PORT"),
	}

	if Config.TELEGRAM_BASE_URL == "" {
		Config.TELEGRAM_BASE_URL = "https://api.telegram.org"
	}
	if Config.PORT == "" {
		Config.PORT = "8080"
	}

	return Config
}
