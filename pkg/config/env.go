package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotGranularityMin = "SLOT_GRANULARITY_MIN"
	EnvMinUsageHours      = "MIN_USAGE_HOURS"
	EnvMaxUsageHours      = "MAX_USAGE_HOURS"
	EnvCrossDayEndTimes   = "CROSS_DAY_END_TIMES"
	EnvAllowNowStart      = "ALLOW_NOW_START"

	EnvDateFormat = "DATE_FORMAT"
	EnvTimeFormat = "TIME_FORMAT"
	EnvLanguage   = "LANGUAGE"

	EnvReservationEventsTopic = "RESERVATION_EVENTS_TOPIC"
	EnvReservationFeedTopic   = "RESERVATION_FEED_TOPIC"
	EnvReservationFeedGroupID = "RESERVATION_FEED_GROUP_ID"
	EnvReservationFeedDLQ     = "RESERVATION_FEED_DLQ"
)
