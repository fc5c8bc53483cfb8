// Package auth authenticates the single operator of the API: credential
// checks at startup, token issuing and bearer token authorization.
package auth

import "strings"

// PublicEndpoints are reachable without a token:
//   - /health, /health/ready: orchestration health checks
//   - /metrics: Prometheus scraping
//   - /auth/token: cannot require a token to get one
var PublicEndpoints = []string{
	"/health",
	"/health/ready",
	"/metrics",
	"/auth/token",
}

// IsPublicEndpoint reports whether path is a public endpoint. Only exact
// matches, a trailing slash or a query string match, so /health does not
// cover /healthcheck or /health/detail.
//
//	IsPublicEndpoint("/health")        // true
//	IsPublicEndpoint("/health?x=1")    // true
//	IsPublicEndpoint("/health/detail") // false
//	IsPublicEndpoint("/articles")      // false
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if path == endpoint || path == endpoint+"/" || strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
