package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration for the application.
type Config struct {
	Port        string
	Environment string
	Origin      string

	MongoURI      string
	MongoDatabase string

	JWTSecret         string
	AccessTokenHours  int
	RefreshTokenHours int

	RateLimitPerSecond float64
	RateLimitBurst     int

	Spaces SpacesConfig
	SMTP   SMTPConfig
}

// SpacesConfig holds the S3-compatible object storage settings used for
// resume and attachment uploads.
type SpacesConfig struct {
	Key      string
	Secret   string
	Endpoint string
	Region   string
	Bucket   string
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	accessHours, err := strconv.Atoi(getEnv("JWT_ACCESS_HOURS", "24"))
	if err != nil {
		accessHours = 24
	}

	refreshHours, err := strconv.Atoi(getEnv("JWT_REFRESH_HOURS", "168"))
	if err != nil {
		refreshHours = 168
	}

	ratePerSecond, err := strconv.ParseFloat(getEnv("RATE_LIMIT_PER_SECOND", "5"), 64)
	if err != nil {
		ratePerSecond = 5
	}

	rateBurst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10"))
	if err != nil {
		rateBurst = 10
	}

	return &Config{
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Origin:      getEnv("FRONTEND_URL", "http://localhost:5173"),

		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "golang-advisorydb"),

		JWTSecret:         getEnv("SECRET_KEY", "default_jwt_secret"),
		AccessTokenHours:  accessHours,
		RefreshTokenHours: refreshHours,

		RateLimitPerSecond: ratePerSecond,
		RateLimitBurst:     rateBurst,

		Spaces: SpacesConfig{
			Key:      getEnv("SPACES_KEY", ""),
			Secret:   getEnv("SPACES_SECRET", ""),
			Endpoint: getEnv("SPACES_ENDPOINT", "https://nyc3.digitaloceanspaces.com"),
			Region:   getEnv("SPACES_REGION", "us-east-1"),
			Bucket:   getEnv("SPACES_BUCKET", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("EMAIL_FROM", "noreply@dphadvisory.com"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
