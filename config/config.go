package config

import (
	"fmt"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/spf13/viper"
)

// DefaultMaxUploadSize is the declared body size above which requests are rejected.
const DefaultMaxUploadSize = dto.DefaultSizeLimit

type Config struct {
	Server ServerConfig
	Upload UploadConfig
	OCR    OCRConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host            string
	Port            string
	Mode            string
	ShutdownTimeout time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
}

// OCRConfig configures the Google Cloud Vision client. Credentials are picked
// up by the Google SDK from GOOGLE_APPLICATION_CREDENTIALS.
type OCRConfig struct {
	ProjectID string
	Endpoint  string
	// Timeout bounds a single text-detection call. Zero means no deadline.
	Timeout time.Duration
}

type LogConfig struct {
	Level string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("MAX_UPLOAD_SIZE", DefaultMaxUploadSize)
	v.SetDefault("GOOGLE_CLOUD_PROJECT", "")
	v.SetDefault("VISION_ENDPOINT", "")
	v.SetDefault("OCR_TIMEOUT", time.Duration(0))
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	port := v.GetString("SERVER_PORT")
	// Cloud Run injects PORT
	if p := v.GetString("PORT"); p != "" {
		port = p
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            port,
			Mode:            v.GetString("GIN_MODE"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Upload: UploadConfig{
			MaxFileSize: v.GetInt64("MAX_UPLOAD_SIZE"),
		},
		OCR: OCRConfig{
			ProjectID: v.GetString("GOOGLE_CLOUD_PROJECT"),
			Endpoint:  v.GetString("VISION_ENDPOINT"),
			Timeout:   v.GetDuration("OCR_TIMEOUT"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.Upload.MaxFileSize)
	}
	if c.OCR.Timeout < 0 {
		return fmt.Errorf("ocr timeout must not be negative, got %s", c.OCR.Timeout)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
