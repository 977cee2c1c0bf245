package config

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// GmailCredentials is the OAuth client blob shared by both mailbox accounts.
type GmailCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type Config struct {
	Port string

	// Gmail enquiry pipeline
	GmailCredentials         *GmailCredentials
	PersonalRefreshToken     string
	ProfessionalRefreshToken string
	EnquiryRulesFile         string

	// Remote preference store (Upstash-style REST KV)
	KVRestAPIURL   string
	KVRestAPIToken string

	// Account balance providers
	StarlingAccessToken string
	Trading212APIKey    string

	// Bookings (Google Calendar, service account JSON)
	GoogleServiceAccountKey string

	// Weather
	OpenWeatherAPIKey string
	WeatherLatitude   string
	WeatherLongitude  string

	// Local device cache (notifier seen-set, local-first prefs)
	CacheDir string

	// Optional dashboard session
	JWTSecret             string
	JWTExpiry             time.Duration
	DashboardPasswordHash string

	NotifyPollInterval time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtExpiry := 720 * time.Hour // 30 days; single trusted device
	if exp := os.Getenv("JWT_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			jwtExpiry = parsed
		}
	}

	pollInterval := 30 * time.Second
	if iv := os.Getenv("NOTIFY_POLL_INTERVAL"); iv != "" {
		if parsed, err := time.ParseDuration(iv); err == nil {
			pollInterval = parsed
		}
	}

	return &Config{
		Port:                     getEnv("PORT", "8080"),
		GmailCredentials:         parseGmailCredentials(os.Getenv("GMAIL_OAUTH_CREDENTIALS")),
		PersonalRefreshToken:     getEnv("GMAIL_PERSONAL_REFRESH_TOKEN", ""),
		ProfessionalRefreshToken: getEnv("GMAIL_PROFESSIONAL_REFRESH_TOKEN", ""),
		EnquiryRulesFile:         getEnv("ENQUIRY_RULES_FILE", ""),
		KVRestAPIURL:             getEnv("KV_REST_API_URL", ""),
		KVRestAPIToken:           getEnv("KV_REST_API_TOKEN", ""),
		StarlingAccessToken:      getEnv("STARLING_ACCESS_TOKEN", ""),
		Trading212APIKey:         getEnv("TRADING212_API_KEY", ""),
		GoogleServiceAccountKey:  getEnv("GOOGLE_SERVICE_ACCOUNT_KEY", ""),
		OpenWeatherAPIKey:        getEnv("OPENWEATHER_API_KEY", ""),
		WeatherLatitude:          getEnv("WEATHER_LAT", "50.9097"),
		WeatherLongitude:         getEnv("WEATHER_LON", "-1.4044"),
		CacheDir:                 getEnv("CACHE_DIR", ".rcc-cache"),
		JWTSecret:                getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:                jwtExpiry,
		DashboardPasswordHash:    getEnv("DASHBOARD_PASSWORD_HASH", ""),
		NotifyPollInterval:       pollInterval,
	}
}

func parseGmailCredentials(blob string) *GmailCredentials {
	if blob == "" {
		return nil
	}
	var creds GmailCredentials
	if err := json.Unmarshal([]byte(blob), &creds); err != nil {
		log.Printf("[WARN] GMAIL_OAUTH_CREDENTIALS is not valid JSON, Gmail disabled: %v", err)
		return nil
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		log.Printf("[WARN] GMAIL_OAUTH_CREDENTIALS missing client_id/client_secret, Gmail disabled")
		return nil
	}
	return &creds
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
