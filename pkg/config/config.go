package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"canteen/pkg/client"
	kafka_config "canteen/pkg/kafka/config"
	"canteen/pkg/logger"

	"github.com/spf13/viper"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port     string
	LogLevel string

	JWTSecret string

	BookingRefHashKey      string
	BookingRefBlockKey     string
	BookingRefMaxAge       time.Duration
	BookingRefAcceptLegacy bool

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	ReportTimezone       string
	ReportWatermark      string
	ReportPageHeight     float64
	ReportCurrencySymbol string
	ReportFetchTimeout   time.Duration

	KafkaEnabled      bool
	ReportEventsTopic string
	ReportEventsDLQ   string
	ReportAuditGroup  string
	Kafka             *kafka_config.Config

	// Worker is set for binaries without an HTTP surface; token and booking
	// reference secrets are not required for them.
	Worker bool

	Log    *logger.Logger
	Client *client.Client
}

// Load reads configuration for serviceName from the environment and an
// optional <serviceName>.yaml, then exits if it does not validate.
func Load(serviceName string) *Config {
	return load(serviceName, false)
}

// LoadWorker is Load for jobs and consumers that serve no HTTP traffic.
func LoadWorker(serviceName string) *Config {
	return load(serviceName, true)
}

func load(serviceName string, worker bool) *Config {
	v := NewViper(serviceName)
	readErr := v.ReadInConfig()
	cfg := FromViper(v)
	cfg.Worker = worker

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})
	cfg.Client = client.NewClient()

	if readErr != nil {
		if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
			cfg.Log.Fatal("Failed to read config file", "error", readErr)
		}
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func NewViper(serviceName string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/canteen")
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(EnvMongoURI, DefaultMongoURI)
	v.SetDefault(EnvMongoDatabaseName, DefaultMongoDatabaseName)
	v.SetDefault(EnvMongoConnTimeout, DefaultMongoConnTimeout)
	v.SetDefault(EnvPort, DefaultPort)
	v.SetDefault(EnvLogLevel, DefaultLogLevel)
	v.SetDefault(EnvBookingRefMaxAge, DefaultBookingRefMaxAge)
	v.SetDefault(EnvBookingRefAcceptLegacy, DefaultBookingRefAcceptLegacy)
	v.SetDefault(EnvRateLimitRequests, DefaultRateLimitRequests)
	v.SetDefault(EnvRateLimitWindow, DefaultRateLimitWindow)
	v.SetDefault(EnvRequestTimeout, DefaultRequestTimeout)
	v.SetDefault(EnvMaxRequestSize, DefaultMaxRequestSize)
	v.SetDefault(EnvReadTimeout, DefaultReadTimeout)
	v.SetDefault(EnvWriteTimeout, DefaultWriteTimeout)
	v.SetDefault(EnvIdleTimeout, DefaultIdleTimeout)
	v.SetDefault(EnvShutdownTimeout, DefaultShutdownTimeout)
	v.SetDefault(EnvReportTimezone, DefaultReportTimezone)
	v.SetDefault(EnvReportWatermark, DefaultReportWatermark)
	v.SetDefault(EnvReportPageHeight, DefaultReportPageHeight)
	v.SetDefault(EnvReportCurrencySymbol, DefaultReportCurrencySymbol)
	v.SetDefault(EnvReportFetchTimeout, DefaultReportFetchTimeout)
	v.SetDefault(EnvKafkaEnabled, DefaultKafkaEnabled)
	v.SetDefault(EnvReportEventsTopic, DefaultReportEventsTopic)
	v.SetDefault(EnvReportEventsDLQ, DefaultReportEventsDLQ)
	v.SetDefault(EnvReportAuditGroup, DefaultReportAuditGroup)
}

// FromViper builds a Config from v without validating it or attaching a logger.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		MongoURI:          v.GetString(EnvMongoURI),
		MongoDatabaseName: v.GetString(EnvMongoDatabaseName),
		MongoConnTimeout:  v.GetDuration(EnvMongoConnTimeout),

		Port:     v.GetString(EnvPort),
		LogLevel: strings.ToLower(v.GetString(EnvLogLevel)),

		JWTSecret: v.GetString(EnvJWTSecret),

		BookingRefHashKey:      v.GetString(EnvBookingRefHashKey),
		BookingRefBlockKey:     v.GetString(EnvBookingRefBlockKey),
		BookingRefMaxAge:       v.GetDuration(EnvBookingRefMaxAge),
		BookingRefAcceptLegacy: v.GetBool(EnvBookingRefAcceptLegacy),

		RateLimitRequests: v.GetInt(EnvRateLimitRequests),
		RateLimitWindow:   v.GetDuration(EnvRateLimitWindow),

		RequestTimeout: v.GetDuration(EnvRequestTimeout),
		MaxRequestSize: v.GetInt(EnvMaxRequestSize),

		ReadTimeout:     v.GetDuration(EnvReadTimeout),
		WriteTimeout:    v.GetDuration(EnvWriteTimeout),
		IdleTimeout:     v.GetDuration(EnvIdleTimeout),
		ShutdownTimeout: v.GetDuration(EnvShutdownTimeout),

		ReportTimezone:       v.GetString(EnvReportTimezone),
		ReportWatermark:      v.GetString(EnvReportWatermark),
		ReportPageHeight:     v.GetFloat64(EnvReportPageHeight),
		ReportCurrencySymbol: v.GetString(EnvReportCurrencySymbol),
		ReportFetchTimeout:   v.GetDuration(EnvReportFetchTimeout),

		KafkaEnabled:      v.GetBool(EnvKafkaEnabled),
		ReportEventsTopic: v.GetString(EnvReportEventsTopic),
		ReportEventsDLQ:   v.GetString(EnvReportEventsDLQ),
		ReportAuditGroup:  v.GetString(EnvReportAuditGroup),
		Kafka:             kafka_config.FromViper(v),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// Location returns the report timezone, falling back to UTC.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) Validate() error {
	var errors []string

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	switch cfg.LogLevel {
	case logger.DEBUG, logger.INFO, logger.WARN, logger.ERROR:
	default:
		errors = append(errors, fmt.Sprintf("LogLevel must be one of [debug, info, warn, error], got: %s", cfg.LogLevel))
	}

	if !cfg.Worker {
		errors = append(errors, cfg.validateHTTP()...)
	}

	if _, err := time.LoadLocation(cfg.ReportTimezone); err != nil {
		errors = append(errors, fmt.Sprintf("ReportTimezone must be an IANA zone name, got: %s", cfg.ReportTimezone))
	}
	if cfg.ReportPageHeight < 50 {
		errors = append(errors, fmt.Sprintf("ReportPageHeight must be at least 50mm, got: %.1f", cfg.ReportPageHeight))
	}
	if cfg.ReportFetchTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReportFetchTimeout must be positive, got: %s", cfg.ReportFetchTimeout))
	}

	if cfg.KafkaEnabled {
		if cfg.ReportEventsTopic == "" {
			errors = append(errors, "ReportEventsTopic cannot be empty when Kafka is enabled")
		}
		if cfg.ReportAuditGroup == "" {
			errors = append(errors, "ReportAuditGroup cannot be empty when Kafka is enabled")
		}
		if cfg.Kafka == nil {
			errors = append(errors, "Kafka configuration is missing")
		} else if err := cfg.Kafka.Validate(); err != nil {
			errors = append(errors, err.Error())
		}
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

// validateHTTP covers the settings only HTTP services use.
func (cfg *Config) validateHTTP() []string {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if len(cfg.JWTSecret) < MinJWTSecretLen {
		errors = append(errors, fmt.Sprintf("JWTSecret must be at least %d bytes", MinJWTSecretLen))
	}
	if len(cfg.BookingRefHashKey) < MinBookingRefHashKeyLen {
		errors = append(errors, fmt.Sprintf("BookingRefHashKey must be at least %d bytes", MinBookingRefHashKeyLen))
	}
	if cfg.BookingRefBlockKey != "" && !validBlockKeyLens[len(cfg.BookingRefBlockKey)] {
		errors = append(errors, fmt.Sprintf("BookingRefBlockKey must be 16, 24 or 32 bytes, got: %d", len(cfg.BookingRefBlockKey)))
	}
	if cfg.BookingRefMaxAge <= 0 {
		errors = append(errors, fmt.Sprintf("BookingRefMaxAge must be positive, got: %s", cfg.BookingRefMaxAge))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
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
	return errors
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"jwt_secret_set", cfg.JWTSecret != "",
		"booking_ref_encrypted", cfg.BookingRefBlockKey != "",
		"booking_ref_max_age", cfg.BookingRefMaxAge,
		"booking_ref_accept_legacy", cfg.BookingRefAcceptLegacy,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"report_timezone", cfg.ReportTimezone,
		"report_watermark_set", cfg.ReportWatermark != "",
		"report_page_height", cfg.ReportPageHeight,
		"report_currency_symbol", cfg.ReportCurrencySymbol,
		"kafka_enabled", cfg.KafkaEnabled,
		"report_events_topic", cfg.ReportEventsTopic,
	)
	if cfg.KafkaEnabled && cfg.Kafka != nil {
		cfg.Kafka.LogConfiguration(cfg.Log.Info)
	}
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
