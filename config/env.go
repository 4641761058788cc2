package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"bayka/theme"

	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret     = "secret"
	defaultSessionSecret = "bayka-session"
	defaultWebhookSecret = "whsec_local"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	RedisURL    string
	RedisAddr   string
	RedisPass   string
	OriginURL   string

	JWTSecret     string
	JWTExpiry     time.Duration
	SessionSecret string
	AdminEmail    string
	AdminPassword string

	BaseURL             string
	Currency            string
	PaymentAPIURL       string
	PaymentAPIKey       string
	PaymentWebhookKey   string
	PaymentTimeout      time.Duration
	CatalogCacheTTL     time.Duration
	CartTTL             time.Duration
	MaxUploadSize       int64
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryURL       string
	SMTPHost            string
	SMTPPort            int
	SMTPUser            string
	SMTPPass            string
	SMTPFrom            string

	Theme theme.Config
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	AppConfig = &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("APP_PORT", getEnv("PORT", "8082")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "bayka"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		RedisURL:    os.Getenv("REDIS_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		OriginURL:   os.Getenv("ORIGIN_URL"),

		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:     getDuration("JWT_EXPIRY", 24*time.Hour),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		BaseURL:             getEnv("BASE_URL", "http://localhost:5173"),
		Currency:            getEnv("CURRENCY", "USD"),
		PaymentAPIURL:       os.Getenv("PAYMENT_API_URL"),
		PaymentAPIKey:       os.Getenv("PAYMENT_API_KEY"),
		PaymentWebhookKey:   getEnv("PAYMENT_WEBHOOK_SECRET", defaultWebhookSecret),
		PaymentTimeout:      getDuration("PAYMENT_TIMEOUT", 10*time.Second),
		CatalogCacheTTL:     getDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		CartTTL:             getDuration("CART_TTL", 30*24*time.Hour),
		MaxUploadSize:       maxUploadSize,
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            smtpPort,
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		SMTPFrom:            getEnv("SMTP_FROM", "Bayka <hello@bayka.coffee>"),

		Theme: loadTheme(),
	}

	if err := AppConfig.CheckSecrets(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

// CheckSecrets rejects the built-in development secrets when running in
// production.
func (c *Config) CheckSecrets() error {
	if c.AppEnv != "production" {
		return nil
	}
	var errs []error
	for _, s := range []struct{ key, value, def string }{
		{"JWT_SECRET", c.JWTSecret, defaultJWTSecret},
		{"SESSION_SECRET", c.SessionSecret, defaultSessionSecret},
		{"PAYMENT_WEBHOOK_SECRET", c.PaymentWebhookKey, defaultWebhookSecret},
	} {
		if s.value == "" || s.value == s.def {
			errs = append(errs, errors.New(s.key+" must be set in production"))
		}
	}
	return errors.Join(errs...)
}

func loadTheme() theme.Config {
	cfg := theme.Default().Merge(theme.Config{
		ButtonVariant:        os.Getenv("THEME_BUTTON_VARIANT"),
		TextAnimation:        os.Getenv("THEME_TEXT_ANIMATION"),
		BorderRadius:         os.Getenv("THEME_BORDER_RADIUS"),
		ContentWidth:         os.Getenv("THEME_CONTENT_WIDTH"),
		Sizing:               os.Getenv("THEME_SIZING"),
		Background:           os.Getenv("THEME_BACKGROUND"),
		CardStyle:            os.Getenv("THEME_CARD_STYLE"),
		PrimaryButtonStyle:   os.Getenv("THEME_PRIMARY_BUTTON_STYLE"),
		SecondaryButtonStyle: os.Getenv("THEME_SECONDARY_BUTTON_STYLE"),
		HeadingFontWeight:    os.Getenv("THEME_HEADING_FONT_WEIGHT"),
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid theme configuration: %v", err)
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s=%q, using %s", key, value, defaultValue)
	}
	return defaultValue
}
