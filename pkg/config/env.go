package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret = "JWT_SECRET"

	EnvBookingRefHashKey      = "BOOKING_REF_HASH_KEY"
	EnvBookingRefBlockKey     = "BOOKING_REF_BLOCK_KEY"
	EnvBookingRefMaxAge       = "BOOKING_REF_MAX_AGE"
	EnvBookingRefAcceptLegacy = "BOOKING_REF_ACCEPT_LEGACY"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvReportTimezone       = "REPORT_TIMEZONE"
	EnvReportWatermark      = "REPORT_WATERMARK"
	EnvReportPageHeight     = "REPORT_PAGE_HEIGHT"
	EnvReportCurrencySymbol = "REPORT_CURRENCY_SYMBOL"
	EnvReportFetchTimeout   = "REPORT_WATERMARK_FETCH_TIMEOUT"

	EnvKafkaEnabled      = "KAFKA_ENABLED"
	EnvReportEventsTopic = "KAFKA_REPORT_EVENTS_TOPIC"
	EnvReportEventsDLQ   = "KAFKA_REPORT_EVENTS_DLQ"
	EnvReportAuditGroup  = "KAFKA_REPORT_AUDIT_GROUP"
)
