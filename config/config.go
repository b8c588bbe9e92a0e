package config

import (
	"os"
	"strconv"

	"github.com/Chaukil/scanchi/logger"
	"gopkg.in/yaml.v2"
)

// Config holds the file-based service configuration. Every field can be
// overridden by an environment variable.
type Config struct {
	Port          string `yaml:"port"`
	APIKey        string `yaml:"api_key"`
	OCRLanguages  string `yaml:"ocr_languages"`
	MaxUploadMB   int64  `yaml:"max_upload_mb"`
	AllowedOrigin string `yaml:"allowed_origin"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:          "8080",
		APIKey:        "secret-key",
		OCRLanguages:  "vie+eng",
		MaxUploadMB:   10,
		AllowedOrigin: "http://localhost:5173",
	}
}

// Load reads the configuration from a YAML file, then applies environment
// overrides. A missing file is not an error; defaults are used.
func Load(filePath string) (*Config, error) {
	cfg := Default()

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				logger.Error("unable to unmarshal config YAML", "path", filePath, "error", err)
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			logger.Error("unable to read config file", "path", filePath, "error", err)
			return nil, err
		}
	}

	cfg.Port = GetEnv("PORT", cfg.Port)
	cfg.APIKey = GetEnv("API_KEY", cfg.APIKey)
	cfg.OCRLanguages = GetEnv("OCR_LANGUAGES", cfg.OCRLanguages)
	cfg.AllowedOrigin = GetEnv("ALLOWED_ORIGIN", cfg.AllowedOrigin)
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadMB = n
		}
	}

	return cfg, nil
}

// GetEnv returns the environment variable value or a fallback.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
