package llm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration indicates a provider credential problem.
	ErrConfiguration = errors.New("api configuration error")

	// ErrRateLimited indicates the provider rejected the request for quota
	// reasons; the caller should retry later, nothing retries automatically.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrModelUnavailable indicates the requested model is temporarily
	// unavailable at the provider.
	ErrModelUnavailable = errors.New("model unavailable")
)

// Categorize buckets a provider failure by substring of its error text.
// The "model" check runs last since most provider messages mention a model.
func Categorize(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key") || strings.Contains(msg, "api key"):
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limit"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case strings.Contains(msg, "model"):
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	default:
		return err
	}
}

// UserFacingMessage maps a categorized failure to the message shown to the
// caller in place of a reply.
func UserFacingMessage(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return "API configuration error. Please check your API key."
	case errors.Is(err, ErrRateLimited):
		return "Rate limit exceeded. Please try again later."
	case errors.Is(err, ErrModelUnavailable):
		return "AI model temporarily unavailable. Please try again."
	default:
		return "Something went wrong while generating the response. Please try again."
	}
}
