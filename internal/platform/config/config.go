package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"flightsurety/pkg/domain"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	AdminAPIToken string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration
	// RequestTimeout bounds each API request's context.
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string

	Owner        domain.Address
	FirstAirline domain.Address

	Fees     Fees
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig

	FlightCacheSize int
}

// Fees are the amounts the core charges and caps, in wei.
type Fees struct {
	AirlineFunding   domain.Amount
	MaxPremium       domain.Amount
	ReporterRegister domain.Amount
}

// DefaultFees are the deployment defaults.
func DefaultFees() Fees {
	return Fees{
		AirlineFunding:   domain.Ether(10),
		MaxPremium:       domain.Ether(1),
		ReporterRegister: domain.Ether(1),
	}
}

// DatabaseConfig selects the PostgreSQL ledger. An empty URL keeps state in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the Redis nonce source. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures event publishing. No brokers disables Kafka.
type KafkaConfig struct {
	Brokers     []string
	EventsTopic string
	Partitions  int32
	Replicas    int16
}

// Enabled reports whether brokers are configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          getEnv("FLIGHTSURETY_ADDR", ":8080"),
		AdminAPIToken: os.Getenv("ADMIN_API_TOKEN"),
		// Use a default for development - should be overridden in production
		JWTSigningKey:   getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:       getEnv("JWT_ISSUER", "flightsurety"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		Fees:            DefaultFees(),
		FlightCacheSize: 1024,
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "flightsurety.events"),
			Partitions:  3,
			Replicas:    1,
		},
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 15*time.Second); err != nil {
		return cfg, err
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	if cfg.Redis.PoolSize, err = getInt("REDIS_POOL_SIZE", cfg.Redis.PoolSize); err != nil {
		return cfg, err
	}
	if cfg.Redis.MinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", cfg.Redis.MinIdleConns); err != nil {
		return cfg, err
	}
	if cfg.Database.MaxOpenConns, err = getInt("DATABASE_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns); err != nil {
		return cfg, err
	}
	if cfg.FlightCacheSize, err = getInt("FLIGHT_CACHE_SIZE", cfg.FlightCacheSize); err != nil {
		return cfg, err
	}

	if cfg.Owner, err = requireAddress("OWNER_ADDRESS"); err != nil {
		return cfg, err
	}
	if raw := os.Getenv("FIRST_AIRLINE_ADDRESS"); raw != "" {
		if cfg.FirstAirline, err = domain.ParseAddress(raw); err != nil {
			return cfg, fmt.Errorf("FIRST_AIRLINE_ADDRESS: %w", err)
		}
	} else {
		cfg.FirstAirline = cfg.Owner
	}

	if cfg.Fees.AirlineFunding, err = getAmount("AIRLINE_FUNDING_FEE_WEI", cfg.Fees.AirlineFunding); err != nil {
		return cfg, err
	}
	if cfg.Fees.MaxPremium, err = getAmount("MAX_PREMIUM_WEI", cfg.Fees.MaxPremium); err != nil {
		return cfg, err
	}
	if cfg.Fees.ReporterRegister, err = getAmount("REPORTER_FEE_WEI", cfg.Fees.ReporterRegister); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getAmount(key string, fallback domain.Amount) (domain.Amount, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := domain.ParseAmount(raw)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func requireAddress(key string) (domain.Address, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return domain.Address{}, fmt.Errorf("%s is required", key)
	}
	addr, err := domain.ParseAddress(raw)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", key, err)
	}
	return addr, nil
}
