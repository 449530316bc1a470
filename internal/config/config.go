package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Precedence order:
// 1. Command-line flags (bound through viper)
// 2. Environment variables (CAREERSCOPE_API_BASEURL, etc.)
// 3. Config file values
// 4. Default values
type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Upload        UploadConfig        `mapstructure:"upload"`
	App           AppConfig           `mapstructure:"app"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// APIConfig holds configuration for the analysis and auth service client
type APIConfig struct {
	BaseURL        string               `mapstructure:"baseUrl"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	RequestsPerMin int                  `mapstructure:"requestsPerMin"` // 0 disables client-side pacing
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration for
// outbound service calls
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for open to half-open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// UploadConfig holds upload validation configuration
type UploadConfig struct {
	AllowedExtensions []string `mapstructure:"allowedExtensions"`
	MaxFileSize       int64    `mapstructure:"maxFileSize"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
}

// ObservabilityConfig holds tracing configuration
type ObservabilityConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	ServiceName   string  `mapstructure:"serviceName"`
	ConsoleOutput bool    `mapstructure:"consoleOutput"` // stdout trace exporter instead of OTLP
	SampleRate    float64 `mapstructure:"sampleRate"`
	OTLP          OTLP    `mapstructure:"otlp"`
}

// OTLP holds OTLP trace exporter configuration
type OTLP struct {
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	// Optional .env file for local development; missing file is fine
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CAREERSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/careerscope/")
	v.AddConfigPath("$HOME/.careerscope")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// API client
	v.SetDefault("api.baseUrl", "http://127.0.0.1:8000/api")
	v.SetDefault("api.timeout", 120*time.Second)
	v.SetDefault("api.requestsPerMin", 0)

	v.SetDefault("api.circuitBreaker.enabled", true)
	v.SetDefault("api.circuitBreaker.maxRequests", 3)
	v.SetDefault("api.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("api.circuitBreaker.timeout", 30*time.Second)
	v.SetDefault("api.circuitBreaker.minRequests", 3)
	v.SetDefault("api.circuitBreaker.failureThreshold", 0.6)

	// Upload validation
	v.SetDefault("upload.allowedExtensions", []string{".pdf", ".docx", ".txt"})
	v.SetDefault("upload.maxFileSize", 10*1024*1024) // 10MB

	// App
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})

	// Observability
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "careerscope")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required (set CAREERSCOPE_API_BASEURL environment variable)")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}

	if len(c.Upload.AllowedExtensions) == 0 {
		return fmt.Errorf("at least one allowed upload extension is required")
	}
	for _, ext := range c.Upload.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid upload extension %q: must start with a dot", ext)
		}
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	if cb := c.API.CircuitBreaker; cb.Enabled {
		if cb.FailureThreshold <= 0 || cb.FailureThreshold > 1 {
			return fmt.Errorf("circuit breaker failure threshold must be in (0, 1]")
		}
	}

	return nil
}
