package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"slotbook/pkg/client"
	"slotbook/pkg/locale"
	"slotbook/pkg/logger"
	"slotbook/pkg/timefmt"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Availability engine defaults; individual requests may override the
	// granularity and usage-hour bounds within validated ranges.
	SlotGranularityMin int
	MinUsageHours      float64
	MaxUsageHours      float64
	CrossDayEndTimes   bool
	AllowNowStart      bool

	DateFormat string // moment-style tokens, e.g. YYYY-MM-DD
	TimeFormat string // moment-style tokens, e.g. HH:mm
	Language   string

	ReservationEventsTopic string
	ReservationFeedTopic   string
	ReservationFeedGroupID string
	ReservationFeedDLQ     string

	Formats timefmt.Formats
	Labels  locale.Labels
	Log     *logger.Logger
	Client  *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		SlotGranularityMin: getEnvNum(EnvSlotGranularityMin, DefaultSlotGranularityMin),
		MinUsageHours:      getEnvFloat(EnvMinUsageHours, DefaultMinUsageHours),
		MaxUsageHours:      getEnvFloat(EnvMaxUsageHours, DefaultMaxUsageHours),
		CrossDayEndTimes:   getEnvBool(EnvCrossDayEndTimes, DefaultCrossDayEndTimes),
		AllowNowStart:      getEnvBool(EnvAllowNowStart, DefaultAllowNowStart),

		DateFormat: getEnvStr(EnvDateFormat, timefmt.DefaultDateTokens),
		TimeFormat: getEnvStr(EnvTimeFormat, timefmt.DefaultTimeTokens),
		Language:   getEnvStr(EnvLanguage, locale.DefaultLanguage),

		ReservationEventsTopic: getEnvStr(EnvReservationEventsTopic, DefaultReservationEventsTopic),
		ReservationFeedTopic:   getEnvStr(EnvReservationFeedTopic, DefaultReservationFeedTopic),
		ReservationFeedGroupID: getEnvStr(EnvReservationFeedGroupID, DefaultReservationFeedGroupID),
		ReservationFeedDLQ:     getEnvStr(EnvReservationFeedDLQ, DefaultReservationFeedDLQ),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.New(),
	}

	formats, err := timefmt.FromTokens(cfg.DateFormat, cfg.TimeFormat)
	if err != nil {
		cfg.Log.Fatal("Invalid date/time format configuration",
			"date_format", cfg.DateFormat,
			"time_format", cfg.TimeFormat,
			"error", err,
		)
	}
	cfg.Formats = formats
	cfg.Labels = locale.For(cfg.Language)

	return cfg
}

// SetMongo connects the shared Mongo client; it must be called before any
// repository is constructed.
func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.SlotGranularityMin <= 0 || 1440%cfg.SlotGranularityMin != 0 {
		errors = append(errors, fmt.Sprintf("SlotGranularityMin must divide a day evenly, got: %d", cfg.SlotGranularityMin))
	}
	if cfg.MinUsageHours < 0 {
		errors = append(errors, fmt.Sprintf("MinUsageHours cannot be negative, got: %g", cfg.MinUsageHours))
	}
	if cfg.MaxUsageHours < cfg.MinUsageHours {
		errors = append(errors, fmt.Sprintf("MaxUsageHours (%g) must be >= MinUsageHours (%g)", cfg.MaxUsageHours, cfg.MinUsageHours))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"slot_granularity_min", cfg.SlotGranularityMin,
		"min_usage_hours", cfg.MinUsageHours,
		"max_usage_hours", cfg.MaxUsageHours,
		"cross_day_end_times", cfg.CrossDayEndTimes,
		"allow_now_start", cfg.AllowNowStart,
		"date_format", cfg.DateFormat,
		"time_format", cfg.TimeFormat,
		"language", cfg.Language,
		"reservation_events_topic", cfg.ReservationEventsTopic,
		"reservation_feed_topic", cfg.ReservationFeedTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
