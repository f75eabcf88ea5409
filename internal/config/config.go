package config

import (
	"os"
	"strconv"
	"time"

	"statcalc/internal"
	"statcalc/internal/engine"
	"statcalc/internal/errors"
	"statcalc/internal/picker"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig
	Logging     LoggingConfig
	Calculators CalculatorConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	UIPort          string
	GinMode         string
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	SweepInterval   time.Duration
}

// LoggingConfig holds log verbosity
type LoggingConfig struct {
	Level internal.LogLevel
}

// CalculatorConfig holds defaults applied to every calculator
type CalculatorConfig struct {
	ModeOrder         engine.ModeOrder
	DecimalPlaces     int
	DefaultMargin     float64
	DefaultConfidence float64
	PickerSurface     picker.Kind
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Logging: LoggingConfig{Level: internal.LogLevelInfo},
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, ok := internal.ParseLogLevel(raw)
		if !ok {
			return nil, errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
		}
		config.Logging.Level = level
	}

	calcConfig, err := loadCalculatorConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load calculator configuration")
	}
	config.Calculators = *calcConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		UIPort:          getEnvOrDefault("UI_PORT", "8081"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		SessionTTL:      getEnvDurationOrDefault("SESSION_TTL", 30*time.Minute),
		SweepInterval:   getEnvDurationOrDefault("SESSION_SWEEP_INTERVAL", time.Minute),
	}
}

func loadCalculatorConfig() (*CalculatorConfig, error) {
	order, err := engine.ParseModeOrder(os.Getenv("MODE_ORDER"))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	surface, err := picker.ParseKind(os.Getenv("PICKER_SURFACE"))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	return &CalculatorConfig{
		ModeOrder:         order,
		DecimalPlaces:     getEnvIntOrDefault("DECIMAL_PLACES", 2),
		DefaultMargin:     getEnvFloatOrDefault("DEFAULT_MARGIN_PERCENT", engine.DefaultMarginPercent),
		DefaultConfidence: getEnvFloatOrDefault("DEFAULT_CONFIDENCE", engine.DefaultConfidencePercent),
		PickerSurface:     surface,
	}, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.SessionTTL <= 0 || config.Server.SweepInterval <= 0 {
		return errors.ConfigInvalid("SESSION_TTL and SESSION_SWEEP_INTERVAL must be positive")
	}
	if config.Calculators.DecimalPlaces < 0 || config.Calculators.DecimalPlaces > 10 {
		return errors.ConfigInvalid("DECIMAL_PLACES must be between 0 and 10")
	}
	if !containsFloat(engine.MarginOptions(), config.Calculators.DefaultMargin) {
		return errors.ConfigInvalid("DEFAULT_MARGIN_PERCENT must be one of the margin picker options")
	}
	if _, ok := levelForPercent(config.Calculators.DefaultConfidence); !ok {
		return errors.ConfigInvalid("DEFAULT_CONFIDENCE must be 90, 95 or 99")
	}
	return nil
}

// CalculatorDefaults returns the picker preselection as picker values.
func (c CalculatorConfig) CalculatorDefaults() (margin string, z string) {
	level, _ := levelForPercent(c.DefaultConfidence)
	return engine.FormatNumber(c.DefaultMargin), engine.FormatNumber(level.Z)
}

func levelForPercent(percent float64) (engine.ConfidenceLevel, bool) {
	for _, level := range engine.ConfidenceLevels() {
		if level.Percent == percent {
			return level, true
		}
	}
	return engine.ConfidenceLevel{}, false
}

func containsFloat(values []float64, v float64) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
