package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"payslip/internal/domain/payroll"
	"payslip/internal/domain/payslip"
	"payslip/internal/platform/crypto"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	DataEncryptionKey string
	Environment       string
	LogLevel          string
	LogFormat         string
	ConfigFile        string
	OutputDir         string
	ArchiveEnabled    bool
	MigrationsDir     string
	RunMigrations     bool
	MaxBodyBytes      int64
	MetricsEnabled    bool
	ShutdownTimeout   time.Duration
	EmailEnabled      bool
	EmailFrom         string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	Defaults          Defaults
}

// Defaults fill in whatever a request leaves out. They come from the TOML
// file named by PAYSLIP_CONFIG.
type Defaults struct {
	Company payslip.Company `toml:"company"`
	Payroll payroll.Config  `toml:"payroll"`
}

func Load() (Config, error) {
	cfg := Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		DataEncryptionKey: getEnv("DATA_ENCRYPTION_KEY", ""),
		Environment:       getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		ConfigFile:        getEnv("PAYSLIP_CONFIG", ""),
		OutputDir:         getEnv("OUTPUT_DIR", "storage/payslips"),
		ArchiveEnabled:    getEnvBool("ARCHIVE_ENABLED", false),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		EmailEnabled:      getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:         getEnv("EMAIL_FROM", "payroll@example.com"),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}
	if cfg.ConfigFile != "" {
		defaults, err := LoadDefaults(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Defaults = defaults
	}
	return cfg, nil
}

func LoadDefaults(path string) (Defaults, error) {
	var defaults Defaults
	meta, err := toml.DecodeFile(path, &defaults)
	if err != nil {
		return Defaults{}, fmt.Errorf("read %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Defaults{}, fmt.Errorf("read %s: unknown keys %v", path, undecoded)
	}
	return defaults, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	if _, err := crypto.New(c.DataEncryptionKey); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}
	return nil
}
