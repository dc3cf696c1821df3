package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Application settings
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Engine  EngineConfig
	Alerts  AlertConfig
}

// Server settings
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	RateLimitRPS   int
	RateLimitBurst int
}

// Engine tunables. Defaults match the documented calculation behavior; they
// are configurable so operators can tighten or loosen the analysis without a
// rebuild.
type EngineConfig struct {
	IRRMaxIterations int
	IRRTolerance     float64
	IRRBracketLow    float64
	IRRBracketHigh   float64
	BenchmarkMargin  float64
	TrendUpPercent   float64
	TrendDownPercent float64
	RiskWeights      RiskWeightConfig
}

// RiskWeightConfig weights the four risk categories. Equal by default.
type RiskWeightConfig struct {
	Technical   float64
	Financial   float64
	Operational float64
	Strategic   float64
}

// Alert evaluation settings
type AlertConfig struct {
	DefaultWindow time.Duration
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", "30s"),
			RateLimitRPS:   getIntEnv("RATE_LIMIT_PER_SECOND", 100),
			RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 20),
		},
		Engine: EngineConfig{
			IRRMaxIterations: getIntEnv("IRR_MAX_ITERATIONS", 100),
			IRRTolerance:     getFloatEnv("IRR_TOLERANCE", 1e-6),
			IRRBracketLow:    getFloatEnv("IRR_BRACKET_LOW", -0.99),
			IRRBracketHigh:   getFloatEnv("IRR_BRACKET_HIGH", 10.0),
			BenchmarkMargin:  getFloatEnv("BENCHMARK_MARGIN", 0.10),
			TrendUpPercent:   getFloatEnv("TREND_UP_PERCENT", 2.0),
			TrendDownPercent: getFloatEnv("TREND_DOWN_PERCENT", -2.0),
			RiskWeights: RiskWeightConfig{
				Technical:   getFloatEnv("RISK_WEIGHT_TECHNICAL", 1.0),
				Financial:   getFloatEnv("RISK_WEIGHT_FINANCIAL", 1.0),
				Operational: getFloatEnv("RISK_WEIGHT_OPERATIONAL", 1.0),
				Strategic:   getFloatEnv("RISK_WEIGHT_STRATEGIC", 1.0),
			},
		},
		Alerts: AlertConfig{
			DefaultWindow: getDurationEnv("ALERT_WINDOW", "24h"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
