package config

import (
	"os"
	"strconv"

	"github.com/adra-labs/adra/pkg/federation"
)

// Config holds engine configuration.
type Config struct {
	LogLevel     string
	ProfilesDir  string
	LedgerDriver string // "memory" | "sqlite" | "postgres"
	LedgerDSN    string
	DriftBackend string // "memory" | "sqlite" | "redis"
	DriftDSN     string
	RedisAddr    string
	ExportMode   federation.Mode
	OTelEnabled  bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	logLevel := os.Getenv("ADRA_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	ledgerDriver := os.Getenv("ADRA_LEDGER_DRIVER")
	if ledgerDriver == "" {
		ledgerDriver = "memory"
	}

	ledgerDSN := os.Getenv("ADRA_LEDGER_DSN")
	if ledgerDSN == "" && ledgerDriver == "sqlite" {
		ledgerDSN = "adra_ledger.db"
	}

	driftBackend := os.Getenv("ADRA_DRIFT_BACKEND")
	if driftBackend == "" {
		driftBackend = "memory"
	}

	otel, _ := strconv.ParseBool(os.Getenv("ADRA_OTEL_ENABLED"))

	return &Config{
		LogLevel:     logLevel,
		ProfilesDir:  os.Getenv("ADRA_PROFILES_DIR"),
		LedgerDriver: ledgerDriver,
		LedgerDSN:    ledgerDSN,
		DriftBackend: driftBackend,
		DriftDSN:     os.Getenv("ADRA_DRIFT_DSN"),
		RedisAddr:    os.Getenv("ADRA_REDIS_ADDR"),
		ExportMode:   federation.ParseMode(os.Getenv("ADRA_EXPORT_MODE")),
		OTelEnabled:  otel,
	}
}
