package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds everything the server reads from the environment. It is
// loaded once in main and passed down, never read again at request time.
type Config struct {
	Port string
	Env  string

	MongoURI string
	DBName   string

	JWTSecret       string
	JWTExpiresIn    time.Duration
	CookieExpiresIn time.Duration

	ResetTokenExpiry time.Duration

	SMTP SMTPConfig

	BucketName string
	AWSRegion  string
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// IsProduction reports whether the server runs with the production error
// formatting (no stack traces in responses).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads and validates the environment. Call godotenv.Load first so a
// local .env file is picked up.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8000"),
		Env:              getEnv("APP_ENV", "development"),
		MongoURI:         os.Getenv("MONGO_URI"),
		DBName:           getEnv("DB_NAME", "gotours"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpiresIn:     24 * time.Hour,
		CookieExpiresIn:  24 * time.Hour,
		ResetTokenExpiry: 10 * time.Minute,
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
		},
		BucketName: os.Getenv("BUCKET_NAME"),
		AWSRegion:  os.Getenv("AWS_REGION"),
	}

	var missing []string
	for _, key := range []string{"MONGO_URI", "JWT_SECRET"} {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if v := strings.TrimSpace(os.Getenv("JWT_EXPIRES_IN")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRES_IN value %q: %w", v, err)
		}
		cfg.JWTExpiresIn = d
	}
	if v := strings.TrimSpace(os.Getenv("JWT_COOKIE_EXPIRES_IN")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_COOKIE_EXPIRES_IN value %q: %w", v, err)
		}
		cfg.CookieExpiresIn = d
	}
	if v := strings.TrimSpace(os.Getenv("RESET_TOKEN_EXPIRY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RESET_TOKEN_EXPIRY value %q: %w", v, err)
		}
		cfg.ResetTokenExpiry = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
