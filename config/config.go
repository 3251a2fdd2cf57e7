package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Storage      Storage
	Export       Export
	Draft        Draft
	GeminiApiKey string
	LogLevel     string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Storage describes the S3-compatible bucket used for photos and generated
// reports. PublicBaseURL is empty for private buckets, in which case links
// are presigned for SignedURLTTL.
type Storage struct {
	Region        string
	Endpoint      string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	SignedURLTTL  time.Duration
}

type Export struct {
	FunctionURL string
	APIKey      string
	Timeout     time.Duration
}

type Draft struct {
	ReseedPolicy string
	IdleTTL      time.Duration
	AbandonAfter time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_BUCKET", "audit-files")
	viper.SetDefault("STORAGE_SIGNED_URL_TTL", "168h")
	viper.SetDefault("EXPORT_TIMEOUT", "60s")
	viper.SetDefault("DRAFT_RESEED_POLICY", "replace")
	viper.SetDefault("DRAFT_IDLE_TTL", "30m")
	viper.SetDefault("DRAFT_ABANDON_AFTER", "24h")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Storage.Region = viper.GetString("STORAGE_REGION")
	config.Storage.Endpoint = viper.GetString("STORAGE_ENDPOINT")
	config.Storage.Bucket = viper.GetString("STORAGE_BUCKET")
	config.Storage.AccessKey = viper.GetString("STORAGE_ACCESS_KEY")
	config.Storage.SecretKey = viper.GetString("STORAGE_SECRET_KEY")
	config.Storage.PublicBaseURL = viper.GetString("STORAGE_PUBLIC_BASE_URL")
	config.Storage.SignedURLTTL = viper.GetDuration("STORAGE_SIGNED_URL_TTL")

	config.Export.FunctionURL = viper.GetString("EXPORT_FUNCTION_URL")
	config.Export.APIKey = viper.GetString("EXPORT_API_KEY")
	config.Export.Timeout = viper.GetDuration("EXPORT_TIMEOUT")

	config.Draft.ReseedPolicy = viper.GetString("DRAFT_RESEED_POLICY")
	config.Draft.IdleTTL = viper.GetDuration("DRAFT_IDLE_TTL")
	config.Draft.AbandonAfter = viper.GetDuration("DRAFT_ABANDON_AFTER")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	log.Info().Interface("config", config.redacted()).Msg("Config loaded")
	return &config, nil
}

func (c Config) redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	c.Database.Password = mask(c.Database.Password)
	c.Storage.SecretKey = mask(c.Storage.SecretKey)
	c.Export.APIKey = mask(c.Export.APIKey)
	c.GeminiApiKey = mask(c.GeminiApiKey)
	return c
}
