package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ghodss/yaml"
)

type Config struct {
	Addr string `json:"addr"`

	CatalogBaseURL string        `json:"catalogBaseUrl"`
	CatalogAPIKey  string        `json:"catalogApiKey"`
	CatalogTimeout time.Duration `json:"-"`
	CatalogRPS     float64       `json:"catalogRps"`

	StorageDriver    string `json:"storageDriver"`
	SQLitePath       string `json:"sqlitePath"`
	DBDSN            string `json:"dbDsn"`
	StorageNamespace string `json:"storageNamespace"`

	LogLevel     string `json:"logLevel"`
	LogFormat    string `json:"logFormat"`
	OTLPEndpoint string `json:"otlpEndpoint"`
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// fileConfig es la forma del archivo YAML. El timeout viaja como string ("10s").
type fileConfig struct {
	Config
	CatalogTimeout string `json:"catalogTimeout"`
}

func Load() (Config, error) {
	return LoadFromEnv(os.Getenv)
}

// LoadFromEnv arma la config a partir del archivo en PETADOPT_CONFIG (opcional)
// y las variables de entorno, que pisan al archivo.
func LoadFromEnv(getenv func(string) string) (Config, error) {
	var cfg Config
	timeoutRaw := ""

	if path := strings.TrimSpace(getenv("PETADOPT_CONFIG")); path != "" {
		fc, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = fc.Config
		timeoutRaw = fc.CatalogTimeout
	}

	override := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	override(&cfg.Addr, "APP_ADDR")
	override(&cfg.CatalogBaseURL, "CATALOG_BASE_URL")
	override(&cfg.CatalogAPIKey, "CATALOG_API_KEY")
	override(&timeoutRaw, "CATALOG_TIMEOUT")
	override(&cfg.StorageDriver, "STORAGE_DRIVER")
	override(&cfg.SQLitePath, "SQLITE_PATH")
	override(&cfg.DBDSN, "DB_DSN")
	override(&cfg.StorageNamespace, "STORAGE_NAMESPACE")
	override(&cfg.LogLevel, "LOG_LEVEL")
	override(&cfg.LogFormat, "LOG_FORMAT")
	override(&cfg.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.CatalogBaseURL == "" {
		cfg.CatalogBaseURL = "https://v2.api.noroff.dev"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "petadopt.db"
	}
	if cfg.StorageNamespace == "" {
		cfg.StorageNamespace = "default"
	}

	if timeoutRaw == "" {
		cfg.CatalogTimeout = 10 * time.Second
	} else {
		d, err := time.ParseDuration(timeoutRaw)
		if err != nil {
			return Config{}, fmt.Errorf("CATALOG_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, errors.New("CATALOG_TIMEOUT: must be > 0")
		}
		cfg.CatalogTimeout = d
	}

	if raw := strings.TrimSpace(getenv("CATALOG_RPS")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("CATALOG_RPS: %w", err)
		}
		cfg.CatalogRPS = rps
	}
	if cfg.CatalogRPS == 0 {
		cfg.CatalogRPS = 5
	}
	if cfg.CatalogRPS < 0 {
		return Config{}, errors.New("CATALOG_RPS: must be > 0")
	}

	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	switch cfg.StorageDriver {
	case "":
		cfg.StorageDriver = DriverSQLite
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DBDSN == "" {
			return Config{}, errors.New("DB_DSN: required when STORAGE_DRIVER=postgres")
		}
	default:
		return Config{}, errors.New("STORAGE_DRIVER: must be one of memory, sqlite, postgres")
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("PETADOPT_CONFIG: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("PETADOPT_CONFIG: %s: %w", path, err)
	}
	return fc, nil
}
