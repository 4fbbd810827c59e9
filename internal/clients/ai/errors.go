package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorCategory classifies a vendor-boundary failure for user messaging.
type ErrorCategory string

const (
	CategoryNetwork    ErrorCategory = "network"
	CategoryAPI        ErrorCategory = "api"
	CategoryGeneration ErrorCategory = "generation"
	CategoryTimeout    ErrorCategory = "timeout"
	CategoryUnknown    ErrorCategory = "unknown"
)

// VendorError wraps a vendor-boundary failure with its category and HTTP
// status (zero when the request never reached the vendor).
type VendorError struct {
	Category   ErrorCategory
	StatusCode int
	Err        error
}

func (e *VendorError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("ai vendor error (%s, status %d): %v", e.Category, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ai vendor error (%s): %v", e.Category, e.Err)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt could plausibly succeed.
// Client errors (4xx other than 429) and malformed generations are not
// retried; everything transient is.
func (e *VendorError) Retryable() bool {
	switch e.Category {
	case CategoryNetwork, CategoryTimeout:
		return true
	case CategoryAPI:
		return e.StatusCode == 429 || e.StatusCode >= 500
	}
	return false
}

// classify assigns a category to a transport-level error.
func classify(err error) *VendorError {
	if err == nil {
		return nil
	}
	var vendorErr *VendorError
	if errors.As(err, &vendorErr) {
		return vendorErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &VendorError{Category: CategoryTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &VendorError{Category: CategoryTimeout, Err: err}
		}
		return &VendorError{Category: CategoryNetwork, Err: err}
	}
	return &VendorError{Category: CategoryUnknown, Err: err}
}

// classifyStatus assigns a category to a non-2xx vendor response.
func classifyStatus(statusCode int, err error) *VendorError {
	if statusCode == 408 || statusCode == 504 {
		return &VendorError{Category: CategoryTimeout, StatusCode: statusCode, Err: err}
	}
	return &VendorError{Category: CategoryAPI, StatusCode: statusCode, Err: err}
}
