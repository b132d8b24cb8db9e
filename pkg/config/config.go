// Package config provides configuration loading and validation for the flightpulse CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidMaxPages        = errors.New("api max pages must be positive")
	ErrInvalidRetryAttempts   = errors.New("api retry max attempts must be positive")
	ErrInvalidRetryFactor     = errors.New("api retry factor must be at least 1")
	ErrInvalidPacing          = errors.New("api pacing must not be negative")
	ErrInvalidTopRoutes       = errors.New("report top routes must be positive")
	ErrInvalidTopDestinations = errors.New("report top destinations must be positive")
	ErrInvalidSampleRatio     = errors.New("observability sample ratio must be within [0, 1]")
)

// Config holds all configuration for the flightpulse CLI.
type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Report        ReportConfig        `mapstructure:"report"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// APIConfig holds AeroAPI client configuration.
type APIConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Key              string        `mapstructure:"key"`
	MaxPages         int           `mapstructure:"max_pages"`
	Timeout          time.Duration `mapstructure:"timeout"`
	Pacing           time.Duration `mapstructure:"pacing"`
	RetryMaxAttempts int           `mapstructure:"retry_max_attempts"`
	RetryBaseBackoff time.Duration `mapstructure:"retry_base_backoff"`
	RetryMaxBackoff  time.Duration `mapstructure:"retry_max_backoff"`
	RetryFactor      float64       `mapstructure:"retry_factor"`
}

// StorageConfig holds flight data storage configuration.
type StorageConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	ArchiveRaw bool   `mapstructure:"archive_raw"`
}

// ReportConfig holds report generation configuration.
type ReportConfig struct {
	OutputDir       string `mapstructure:"output_dir"`
	TopRoutes       int    `mapstructure:"top_routes"`
	TopDestinations int    `mapstructure:"top_destinations"`
}

// LLMConfig holds narrative generation configuration.
type LLMConfig struct {
	Model       string `mapstructure:"model"`
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	PromptsFile string `mapstructure:"prompts_file"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ObservabilityConfig holds OpenTelemetry export configuration.
type ObservabilityConfig struct {
	OTLPEndpoint  string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders   string  `mapstructure:"otlp_headers"`
	MetricsListen string  `mapstructure:"metrics_listen"`
	SampleRatio   float64 `mapstructure:"sample_ratio"`
	OTLPInsecure  bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	// Set defaults.
	setDefaults(viperCfg)

	// Read config file.
	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("flightpulse")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/flightpulse")
	}

	// Read environment variables (FLIGHTPULSE_API_KEY maps to api.key).
	viperCfg.SetEnvPrefix("FLIGHTPULSE")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file.
	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// API defaults.
	viperCfg.SetDefault("api.base_url", DefaultBaseURL)
	viperCfg.SetDefault("api.key", "")
	viperCfg.SetDefault("api.max_pages", DefaultMaxPages)
	viperCfg.SetDefault("api.timeout", DefaultTimeout)
	viperCfg.SetDefault("api.pacing", DefaultPacing)
	viperCfg.SetDefault("api.retry_max_attempts", DefaultRetryMaxAttempts)
	viperCfg.SetDefault("api.retry_base_backoff", DefaultRetryBaseBackoff)
	viperCfg.SetDefault("api.retry_max_backoff", DefaultRetryMaxBackoff)
	viperCfg.SetDefault("api.retry_factor", DefaultRetryFactor)

	// Storage defaults.
	viperCfg.SetDefault("storage.data_dir", DefaultDataDir)
	viperCfg.SetDefault("storage.archive_raw", DefaultArchiveRaw)

	// Report defaults.
	viperCfg.SetDefault("report.output_dir", DefaultOutputDir)
	viperCfg.SetDefault("report.top_routes", DefaultTopRoutes)
	viperCfg.SetDefault("report.top_destinations", DefaultTopDestinations)

	// LLM defaults.
	viperCfg.SetDefault("llm.model", DefaultLLMModel)
	viperCfg.SetDefault("llm.api_key", "")
	viperCfg.SetDefault("llm.base_url", "")
	viperCfg.SetDefault("llm.prompts_file", "")

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Observability defaults.
	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("observability.otlp_headers", "")
	viperCfg.SetDefault("observability.metrics_listen", "")
	viperCfg.SetDefault("observability.sample_ratio", DefaultSampleRatio)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.API.MaxPages <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxPages, config.API.MaxPages)
	}

	if config.API.RetryMaxAttempts <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRetryAttempts, config.API.RetryMaxAttempts)
	}

	if config.API.RetryFactor < 1 {
		return fmt.Errorf("%w: %g", ErrInvalidRetryFactor, config.API.RetryFactor)
	}

	if config.API.Pacing < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPacing, config.API.Pacing)
	}

	if config.Report.TopRoutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopRoutes, config.Report.TopRoutes)
	}

	if config.Report.TopDestinations <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopDestinations, config.Report.TopDestinations)
	}

	if config.Observability.SampleRatio < 0 || config.Observability.SampleRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRatio, config.Observability.SampleRatio)
	}

	return nil
}
