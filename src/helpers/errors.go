package helpers

import (
	"fmt"
	"time"

	"fleet-observer/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type FleetObserverError struct {
	Message string
	Cause   error
}

func (e *FleetObserverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *FleetObserverError) Unwrap() error {
	return e.Cause
}

// Distinct error types for type assertions where callers branch
type ConfigurationError struct{ FleetObserverError }
type StorageError struct{ FleetObserverError }
type StreamError struct{ FleetObserverError }

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{FleetObserverError{Message: message, Cause: cause}}
}

func NewStorageError(message string, cause error) *StorageError {
	return &StorageError{FleetObserverError{Message: message, Cause: cause}}
}

func NewStreamError(message string, cause error) *StreamError {
	return &StreamError{FleetObserverError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts the operation up to maxRetries times with
// exponential backoff. Used for bootstrap steps (database readiness);
// the live ingestor's reconnect loop deliberately uses a fixed delay
// instead.
func RetryWithBackoff(log *logger.Logger, operation string, maxRetries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		log.Warning("Attempt %d/%d failed for %s: %v. Retrying in %v", attempt+1, maxRetries, operation, lastErr, delay)
		time.Sleep(delay)
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, maxRetries, lastErr)
}
