package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"topup/internal/core/application/usecases/commands"
	"topup/internal/jobs"
	"topup/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	SessionKey   []byte
	CSRFKey      []byte
	CookieSecure bool

	UploadDir       string
	ReceiptDir      string
	MaxProofBytes   int64
	ReceiptLocation *time.Location

	ReconcileSchedule string
	OrphanGrace       time.Duration

	AdminUsername   string
	AdminPassword   string
	CatalogSeedPath string
}

const minSessionKeyLength = 32

// LoadConfig reads the configuration through getenv, usually os.Getenv after
// godotenv has populated the environment.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:          get("HTTP_PORT", "8080"),
		DBHost:            get("DB_HOST", "localhost"),
		DBPort:            get("DB_PORT", "5432"),
		DBUser:            get("DB_USER", "postgres"),
		DBPassword:        getenv("DB_PASSWORD"),
		DBName:            get("DB_NAME", "topup"),
		DBSslMode:         get("DB_SSLMODE", "disable"),
		SessionKey:        []byte(getenv("SESSION_KEY")),
		CSRFKey:           []byte(getenv("CSRF_KEY")),
		UploadDir:         get("UPLOAD_DIR", "static/uploads"),
		ReceiptDir:        get("RECEIPT_DIR", "static/receipts"),
		ReconcileSchedule: get("RECONCILE_SCHEDULE", jobs.DefaultReconcileSchedule),
		AdminUsername:     getenv("ADMIN_USERNAME"),
		AdminPassword:     getenv("ADMIN_PASSWORD"),
		CatalogSeedPath:   getenv("CATALOG_SEED_PATH"),
	}

	var errList []error

	if len(cfg.SessionKey) < minSessionKeyLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("SESSION_KEY length", len(cfg.SessionKey), minSessionKeyLength, "any"))
	}
	if len(cfg.CSRFKey) != 0 && len(cfg.CSRFKey) != 32 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("CSRF_KEY length", len(cfg.CSRFKey), 32, 32))
	}

	var err error
	if cfg.CookieSecure, err = strconv.ParseBool(get("COOKIE_SECURE", "false")); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("COOKIE_SECURE", err))
	}

	cfg.MaxProofBytes, err = strconv.ParseInt(get("MAX_PROOF_BYTES", strconv.FormatInt(commands.DefaultMaxProofBytes, 10)), 10, 64)
	if err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("MAX_PROOF_BYTES", err))
	} else if cfg.MaxProofBytes <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("MAX_PROOF_BYTES", cfg.MaxProofBytes, 1, "any"))
	}

	cfg.OrphanGrace, err = time.ParseDuration(get("ORPHAN_GRACE", commands.DefaultOrphanGrace.String()))
	if err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("ORPHAN_GRACE", err))
	} else if cfg.OrphanGrace < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("ORPHAN_GRACE", cfg.OrphanGrace, 0, "any"))
	}

	if cfg.ReceiptLocation, err = time.LoadLocation(get("RECEIPT_TIMEZONE", "Local")); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("RECEIPT_TIMEZONE", err))
	}

	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		errList = append(errList, errs.NewValueIsRequiredError("ADMIN_USERNAME and ADMIN_PASSWORD together"))
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
