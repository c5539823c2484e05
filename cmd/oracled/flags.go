package main

import (
	"errors"
	"time"

	"github.com/spf13/pflag"

	"flightsurety/pkg/domain"
)

const (
	APIURLKey      = "api-url"
	AdminTokenKey  = "admin-token"
	BrokersKey     = "brokers"
	TopicKey       = "topic"
	GroupKey       = "group"
	FromStartKey   = "from-start"
	ReportersKey   = "reporters"
	StrategyKey    = "strategy"
	FeeKey         = "fee"
	SeedKey        = "seed"
	RandSeedKey    = "rand-seed"
	ConcurrencyKey = "concurrency"
	TimeoutKey     = "timeout"
	LogLevelKey    = "log-level"
	LogFormatKey   = "log-format"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(APIURLKey, "http://localhost:8080", "Base URL of the flightsurety API")
	flags.String(AdminTokenKey, "", "Admin token used to mint reporter tokens (required)")
	flags.StringSlice(BrokersKey, []string{"localhost:9092"}, "Kafka seed brokers")
	flags.String(TopicKey, "flightsurety.events", "Topic carrying flightsurety events")
	flags.String(GroupKey, "flightsurety-oracled", "Kafka consumer group")
	flags.Bool(FromStartKey, false, "Consume from the earliest offset when the group has no commits")
	flags.Int(ReportersKey, 20, "Number of simulated reporters")
	flags.String(StrategyKey, "random", "Status to report: random, or a fixed status code")
	flags.String(FeeKey, "1000000000000000000", "Registration value per reporter, in wei")
	flags.String(SeedKey, "flightsurety-reporter", "Seed reporter addresses are derived from")
	flags.Uint64(RandSeedKey, 0, "Seed for the random strategy (0 picks one)")
	flags.Int(ConcurrencyKey, 8, "Concurrent report submissions per status request")
	flags.Duration(TimeoutKey, 10*time.Second, "HTTP timeout per API call")
	flags.String(LogLevelKey, "info", "Log level")
	flags.String(LogFormatKey, "json", "Log format: json or text")
}

type Config struct {
	APIURL      string
	AdminToken  string
	Brokers     []string
	Topic       string
	Group       string
	FromStart   bool
	Reporters   int
	Strategy    string
	Fee         domain.Amount
	Seed        string
	RandSeed    uint64
	Concurrency int
	Timeout     time.Duration
	LogLevel    string
	LogFormat   string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	var (
		cfg Config
		err error
	)
	if cfg.APIURL, err = flags.GetString(APIURLKey); err != nil {
		return nil, err
	}
	if cfg.AdminToken, err = flags.GetString(AdminTokenKey); err != nil {
		return nil, err
	}
	if cfg.AdminToken == "" {
		return nil, errors.New("--admin-token is required")
	}
	if cfg.Brokers, err = flags.GetStringSlice(BrokersKey); err != nil {
		return nil, err
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if cfg.Topic, err = flags.GetString(TopicKey); err != nil {
		return nil, err
	}
	if cfg.Group, err = flags.GetString(GroupKey); err != nil {
		return nil, err
	}
	if cfg.FromStart, err = flags.GetBool(FromStartKey); err != nil {
		return nil, err
	}
	if cfg.Reporters, err = flags.GetInt(ReportersKey); err != nil {
		return nil, err
	}
	if cfg.Reporters < 1 {
		return nil, errors.New("--reporters must be at least 1")
	}
	if cfg.Strategy, err = flags.GetString(StrategyKey); err != nil {
		return nil, err
	}

	fee, err := flags.GetString(FeeKey)
	if err != nil {
		return nil, err
	}
	if cfg.Fee, err = domain.ParseAmount(fee); err != nil {
		return nil, err
	}

	if cfg.Seed, err = flags.GetString(SeedKey); err != nil {
		return nil, err
	}
	if cfg.RandSeed, err = flags.GetUint64(RandSeedKey); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = flags.GetInt(ConcurrencyKey); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration(TimeoutKey); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = flags.GetString(LogLevelKey); err != nil {
		return nil, err
	}
	if cfg.LogFormat, err = flags.GetString(LogFormatKey); err != nil {
		return nil, err
	}
	return &cfg, nil
}
