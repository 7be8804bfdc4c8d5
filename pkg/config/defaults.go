package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "canteen"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultBookingRefMaxAge       = 30 * 24 * time.Hour
	DefaultBookingRefAcceptLegacy = false

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultReportTimezone       = "UTC"
	DefaultReportWatermark      = ""
	DefaultReportPageHeight     = 280.0 // mm, A4 minus bottom margin
	DefaultReportCurrencySymbol = "Rs."
	DefaultReportFetchTimeout   = 5 * time.Second

	DefaultKafkaEnabled      = false
	DefaultReportEventsTopic = "report.generated"
	DefaultReportEventsDLQ   = "dlq-report-audit"
	DefaultReportAuditGroup  = "report-audit-consumer-group"

	// securecookie needs a 32 or 64 byte HMAC key and a 16, 24 or 32 byte AES key.
	MinBookingRefHashKeyLen = 32
	MinJWTSecretLen         = 32
)

var validBlockKeyLens = map[int]bool{16: true, 24: true, 32: true}
