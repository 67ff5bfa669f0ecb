package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/parcel"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Transition policies.
const (
	PolicyStrict = "strict"
	PolicyLegacy = "legacy"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr        string        `env:"REDIS_ADDR"`
	TrackingCacheTTL time.Duration `env:"TRACKING_CACHE_TTL" envDefault:"5m"`

	KafkaBrokers           []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaParcelStatusTopic string   `env:"KAFKA_PARCEL_STATUS_TOPIC" envDefault:"parcel.status"`

	JWTSecret string `env:"JWT_SECRET,required"`

	StatusTransitions     string `env:"STATUS_TRANSITIONS" envDefault:"strict"`
	PaymentTransitions    string `env:"PAYMENT_TRANSITIONS" envDefault:"strict"`
	OverdueReportSchedule string `env:"OVERDUE_REPORT_SCHEDULE" envDefault:"@hourly"`
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var statusErr, paymentErr error
	if !isPolicy(c.StatusTransitions) {
		statusErr = fmt.Errorf("STATUS_TRANSITIONS: %q is not %s or %s", c.StatusTransitions, PolicyStrict, PolicyLegacy)
	}
	if !isPolicy(c.PaymentTransitions) {
		paymentErr = fmt.Errorf("PAYMENT_TRANSITIONS: %q is not %s or %s", c.PaymentTransitions, PolicyStrict, PolicyLegacy)
	}
	return errors.Join(statusErr, paymentErr)
}

func isPolicy(s string) bool {
	s = strings.ToLower(s)
	return s == PolicyStrict || s == PolicyLegacy
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// TransitionRule returns the parcel status policy.
func (c Config) TransitionRule() parcel.TransitionRule {
	if strings.EqualFold(c.StatusTransitions, PolicyLegacy) {
		return parcel.AnyTransition
	}
	return parcel.StrictTransitions
}

// PaymentRule returns the invoice payment policy.
func (c Config) PaymentRule() invoice.PaymentRule {
	if strings.EqualFold(c.PaymentTransitions, PolicyLegacy) {
		return invoice.AnyPayment
	}
	return invoice.StrictPayments
}
