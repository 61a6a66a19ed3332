package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the referral checker

// ErrMissingInput is returned when no input file path was given
var ErrMissingInput = errors.New("input file path is required")

// ErrInputUnreadable is returned when the input file cannot be read
var ErrInputUnreadable = errors.New("input file unreadable")

// ErrNoLinks is returned when the input file contains no referral links
var ErrNoLinks = errors.New("no referral links found")

// ErrBrowserLaunch is returned when the headless browser session cannot be started
var ErrBrowserLaunch = errors.New("browser launch failed")

// ErrMalformedResponse is returned when a status response body is not valid JSON
var ErrMalformedResponse = errors.New("malformed status response")

// ErrStatusCheckFailed describes a single failed exchange with the status authority.
// It never escapes a checker; it is only logged.
// StatusCode is 0 for transport faults and -1 when no request could be built.
type ErrStatusCheckFailed struct {
	Code       string
	StatusCode int
	Reason     string
	Err        error
}

func (e ErrStatusCheckFailed) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status check for code %s failed with HTTP %d: %s", e.Code, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("status check for code %s failed: %s", e.Code, e.Reason)
}

func (e ErrStatusCheckFailed) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure belongs to the server-fault or transport class.
func (e ErrStatusCheckFailed) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// ErrConfigLoad is returned when configuration loading fails
type ErrConfigLoad struct {
	Path   string
	Reason string
}

func (e ErrConfigLoad) Error() string {
	return fmt.Sprintf("failed to load config from %s: %s", e.Path, e.Reason)
}
