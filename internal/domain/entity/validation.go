package entity

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateURL validates the format of an article link.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a host.
// Scraped links are never fetched by the application, so no network lookups are done.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "invalid URL format"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// ValidateDate checks that s is a calendar date in YYYY-MM-DD form.
func ValidateDate(field, s string) error {
	if s == "" {
		return &ValidationError{Field: field, Message: "date is required"}
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return &ValidationError{Field: field, Message: "date must be in YYYY-MM-DD format"}
	}
	return nil
}

// ValidateRequired rejects empty or whitespace-only values.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}
