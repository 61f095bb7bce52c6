package extract

import (
	"fmt"
	"strings"
)

type (
	NotFoundError     struct{ Reason string }
	UnavailableError  struct{ Reason string }
	AccessDeniedError struct{ Reason string }
	AuthRequiredError struct{ Reason string }
	RateLimitedError  struct{ Reason string }
	UnsupportedError  struct{ Reason string }
	ExtractionError   struct{ Reason string }
)

func (err *NotFoundError) Error() string     { return fmt.Sprintf("content not found: %s", err.Reason) }
func (err *UnavailableError) Error() string  { return fmt.Sprintf("content unavailable: %s", err.Reason) }
func (err *AccessDeniedError) Error() string { return fmt.Sprintf("access denied: %s", err.Reason) }
func (err *AuthRequiredError) Error() string {
	return fmt.Sprintf("authentication required: %s", err.Reason)
}
func (err *RateLimitedError) Error() string { return fmt.Sprintf("rate limited: %s", err.Reason) }
func (err *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported URL: %s", err.Reason)
}
func (err *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s", err.Reason)
}

// classifyFailure inspects the backend's stderr output and wraps it in the
// matching typed error. The raw output is retained as the reason so that
// nothing upstream reports is lost.
func classifyFailure(stderr string) error {
	reason := strings.TrimSpace(stderr)
	if reason == "" {
		reason = "no error output from extraction backend"
	}

	switch {
	case containsAny(reason, "HTTP Error 404", "Not Found"):
		return &NotFoundError{reason}
	case containsAny(reason, "HTTP Error 403", "Forbidden"):
		return &AccessDeniedError{reason}
	case containsAny(reason, "HTTP Error 429", "Too Many Requests"):
		return &RateLimitedError{reason}
	case containsAny(reason, "HTTP Error 401", "Unauthorized", "NSFW tweet", "log in"):
		return &AuthRequiredError{reason}
	case containsAny(reason, "Unsupported URL"):
		return &UnsupportedError{reason}
	case containsAny(reason, "Video unavailable", "Unable to extract", "Could not extract", "No video"):
		return &UnavailableError{reason}
	default:
		return &ExtractionError{reason}
	}
}

func containsAny(haystack string, needles ...string) bool {
	lowered := strings.ToLower(haystack)
	for _, needle := range needles {
		if strings.Contains(lowered, strings.ToLower(needle)) {
			return true
		}
	}

	return false
}
