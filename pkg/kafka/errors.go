package kafka

import (
	"context"
	"errors"
	"io"
	"net"
)

var (
	ErrProducerClosed = errors.New("kafka producer is closed")
	ErrConsumerClosed = errors.New("kafka consumer is closed")
	ErrEmptyKey       = errors.New("message key cannot be empty")
	ErrEmptyValue     = errors.New("message value cannot be empty")

	// ErrPermanent marks handler failures that must not be retried; they
	// go straight to the DLQ.
	ErrPermanent = errors.New("permanent message failure")
)

// ShouldRetry reports whether a handler failure is worth another attempt.
func ShouldRetry(err error, attempts, maxRetries int) bool {
	if attempts >= maxRetries {
		return false
	}
	if errors.Is(err, ErrPermanent) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	// Unknown errors get the benefit of the doubt once.
	return attempts == 0
}
