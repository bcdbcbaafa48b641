// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Database      DatabaseConfig
	Forensic      ForensicConfig
	Benchmark     BenchmarkConfig
	Observability ObservabilityConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// ForensicConfig carries the policy values of the extraction engine. All of
// them are injected, never hard-coded at call sites, so tests can pin them
// across locales and years.
type ForensicConfig struct {
	// OfficialIPCIndex is the official monthly IPC percentage the statutory
	// auditor compares declared adjustments against.
	OfficialIPCIndex float64
	// IPCTolerance is the multiple of the official index above which an
	// adjustment is flagged.
	IPCTolerance float64
	DefaultMonth string
	DefaultYear  int
	// OCRLanguage is the tesseract language code for scanned statements.
	OCRLanguage string
	// ComplianceThreshold is the transparency score above which the
	// portfolio counts as in compliance.
	ComplianceThreshold int
}

// BenchmarkConfig tunes the overprice detector.
type BenchmarkConfig struct {
	CriticalDeviationPct float64
	ModerateDeviationPct float64
	// CatalogCSV optionally points at a reference-price CSV used instead of
	// the precios_referencia table.
	CatalogCSV string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "lupacomun-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Forensic: ForensicConfig{
			OfficialIPCIndex:    getEnvAsFloat("IPC_OFFICIAL_INDEX", 0.45),
			IPCTolerance:        getEnvAsFloat("IPC_TOLERANCE_MULTIPLE", 1.5),
			DefaultMonth:        getEnv("DEFAULT_PERIOD_MONTH", "marzo"),
			DefaultYear:         getEnvAsInt("DEFAULT_PERIOD_YEAR", 2026),
			OCRLanguage:         getEnv("OCR_LANGUAGE", "spa"),
			ComplianceThreshold: getEnvAsInt("COMPLIANCE_SCORE_THRESHOLD", 70),
		},
		Benchmark: BenchmarkConfig{
			CriticalDeviationPct: getEnvAsFloat("OVERPRICE_CRITICAL_PCT", 30),
			ModerateDeviationPct: getEnvAsFloat("OVERPRICE_MODERATE_PCT", 15),
			CatalogCSV:           getEnv("PRICE_CATALOG_CSV", ""),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
