package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config contains runtime settings for the upload service and MCP server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default 8080

	Niceboard struct {
		APIKey  string
		BaseURL string
	}

	Upload struct {
		BatchSize          int
		GeocodeMaxAttempts int
	}

	Nominatim struct {
		BaseURL string
	}

	Clearbit struct {
		BaseURL string
	}

	Sheets struct {
		CredentialsPath string
	}
}

// env maps config keys to the environment variables that set them
var env = map[string]string{
	"log_level":                   "LOG_LEVEL",
	"host":                        "MCP_HOST",
	"port":                        "PORT",
	"niceboard.api_key":           "NICEBOARD_API_KEY",
	"niceboard.base_url":          "NICEBOARD_BASE_URL",
	"upload.batch_size":           "UPLOAD_BATCH_SIZE",
	"upload.geocode_max_attempts": "GEOCODE_MAX_ATTEMPTS",
	"nominatim.base_url":          "NOMINATIM_BASE_URL",
	"clearbit.base_url":           "CLEARBIT_BASE_URL",
	"sheets.credentials_path":     "GOOGLE_SHEETS_CREDENTIALS_PATH",
}

// Load reads settings from the environment and an optional niceboard.yaml
// in the working directory or ./config. NICEBOARD_CONFIG points at an
// explicit file instead. Environment variables win over the file.
func Load() (Config, error) {
	v := viper.New()
	if err := v.BindEnv("config_file", "NICEBOARD_CONFIG"); err != nil {
		return Config{}, err
	}
	return load(v, v.GetString("config_file"))
}

func load(v *viper.Viper, file string) (Config, error) {
	var cfg Config

	v.SetDefault("log_level", "info")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("upload.batch_size", "10")
	v.SetDefault("upload.geocode_max_attempts", "3")
	v.SetDefault("clearbit.base_url", "https://logo.clearbit.com")

	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return cfg, fmt.Errorf("config: bind %s: %w", name, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("niceboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg.LogLevel = v.GetString("log_level")
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetString("port")
	cfg.Niceboard.APIKey = strings.TrimSpace(v.GetString("niceboard.api_key"))
	cfg.Niceboard.BaseURL = v.GetString("niceboard.base_url")
	cfg.Nominatim.BaseURL = v.GetString("nominatim.base_url")
	cfg.Clearbit.BaseURL = v.GetString("clearbit.base_url")
	cfg.Sheets.CredentialsPath = v.GetString("sheets.credentials_path")

	var problems []string
	positive := func(key string, dst *int) {
		raw := strings.TrimSpace(v.GetString(key))
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be a positive integer, got %q", env[key], raw))
			return
		}
		*dst = n
	}
	positive("upload.batch_size", &cfg.Upload.BatchSize)
	positive("upload.geocode_max_attempts", &cfg.Upload.GeocodeMaxAttempts)

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		problems = append(problems, fmt.Sprintf("PORT must be numeric, got %q", cfg.Port))
	}
	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	if cfg.Niceboard.APIKey == "" {
		return cfg, fmt.Errorf("missing required environment variables: %s", env["niceboard.api_key"])
	}

	return cfg, nil
}
