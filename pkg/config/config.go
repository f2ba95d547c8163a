package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	BotToken          string
	DatabaseURL       string
	AdminIDs          []int64
	DashboardUser     string
	DashboardPassword string
	JWTSecret         string
	JWTAccessExpiry   time.Duration
	SpeechAPIKey      string
	GoogleCredentials string // path to a service account JSON file
	SpeechLanguage    string
	FFmpegPath        string
	ConversionTimeout time.Duration
	ReminderInterval  time.Duration
	ReminderLead      time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "7000"),
		BotToken:          getEnv("BOT_TOKEN", ""),
		DatabaseURL:       getEnv("DATABASE_URL", "sqlite://tasks.db"),
		AdminIDs:          parseIDs(getEnv("ADMIN_IDS", "")),
		DashboardUser:     getEnv("DASHBOARD_USER", "admin"),
		DashboardPassword: getEnv("DASHBOARD_PASSWORD", "admin"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:   getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		SpeechAPIKey:      getEnv("SPEECH_API_KEY", ""),
		GoogleCredentials: getEnv("GOOGLE_CREDENTIALS", ""),
		SpeechLanguage:    getEnv("SPEECH_LANGUAGE", "ru-RU"),
		FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
		ConversionTimeout: getDuration("CONVERSION_TIMEOUT", 10*time.Second),
		ReminderInterval:  getDuration("REMINDER_INTERVAL", time.Minute),
		ReminderLead:      getDuration("REMINDER_LEAD", time.Hour),
	}
}

// IsAdmin reports whether the Telegram user id is listed in ADMIN_IDS.
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("[Config] Ignoring invalid duration %s=%q", key, value)
	}
	return defaultValue
}

func parseIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("[Config] Ignoring invalid admin id %q", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
