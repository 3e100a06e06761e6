package entity

import (
	"errors"
	"fmt"
)

type ErrorCategory string

const (
	ErrCategoryConfig  ErrorCategory = "config"
	ErrCategoryLocator ErrorCategory = "locator"
	ErrCategoryDriver  ErrorCategory = "driver"
)

// LocatorError is a categorized engine error. Two LocatorErrors match with
// errors.Is when their codes are equal, so the predefined values below work
// as sentinels even after WithMessage or WithDetails.
type LocatorError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Details  map[string]any
	Cause    error
}

func (e *LocatorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LocatorError) Unwrap() error {
	return e.Cause
}

func (e *LocatorError) Is(target error) bool {
	var other *LocatorError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func (e *LocatorError) WithCause(cause error) *LocatorError {
	return &LocatorError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

func (e *LocatorError) WithMessage(msg string) *LocatorError {
	return &LocatorError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

func (e *LocatorError) WithDetails(details map[string]any) *LocatorError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &LocatorError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

var (
	// Configuration errors are raised while the registries are assembled.
	ErrInvalidRegistry = &LocatorError{
		Category: ErrCategoryConfig,
		Code:     "invalid_registry",
		Message:  "invalid locator type registry",
	}
	ErrMissingStrategy = &LocatorError{
		Category: ErrCategoryConfig,
		Code:     "missing_strategy",
		Message:  "no strategy registered",
	}

	ErrUnknownLocatorType = &LocatorError{
		Category: ErrCategoryLocator,
		Code:     "unknown_locator_type",
		Message:  "unknown locator type",
	}
	ErrUnsupportedFilter = &LocatorError{
		Category: ErrCategoryLocator,
		Code:     "unsupported_filter",
		Message:  "unsupported filter for search type",
	}
	ErrCompetingAttributes = &LocatorError{
		Category: ErrCategoryLocator,
		Code:     "competing_attributes",
		Message:  "competing attributes",
	}
	ErrInvalidFilterValue = &LocatorError{
		Category: ErrCategoryLocator,
		Code:     "invalid_filter_value",
		Message:  "invalid filter value",
	}
	ErrInvalidLocatorFormat = &LocatorError{
		Category: ErrCategoryLocator,
		Code:     "invalid_locator_format",
		Message:  "invalid locator format",
	}
	ErrUnsupportedPosition = &LocatorError{
		Category: ErrCategoryLocator,
		Code:     "unsupported_position",
		Message:  "unsupported relative element position",
	}
	ErrInvalidNearFormat = &LocatorError{
		Category: ErrCategoryLocator,
		Code:     "invalid_near_format",
		Message:  "invalid near position format",
	}

	ErrDriver = &LocatorError{
		Category: ErrCategoryDriver,
		Code:     "driver_failure",
		Message:  "driver call failed",
	}
)
