package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "slotbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotGranularityMin = 30
	DefaultMinUsageHours      = 0.0
	DefaultMaxUsageHours      = 24.0
	DefaultCrossDayEndTimes   = true
	DefaultAllowNowStart      = true

	DefaultReservationEventsTopic = "slotbook.reservation.events"
	DefaultReservationFeedTopic   = "booking.reservations"
	DefaultReservationFeedGroupID = "slotbook-feed"
	DefaultReservationFeedDLQ     = "booking.reservations.dlq"

	DefaultPaginationLimit = 50
	MaxPaginationLimit     = 100
)

// NormalizePaginationLimit clamps a requested page size into the allowed
// range.
func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		return DefaultPaginationLimit
	}
	if limit > MaxPaginationLimit {
		return MaxPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	if offset < 0 {
		return 0
	}
	return offset
}
