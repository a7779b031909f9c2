// Package common contains constants and sentinel errors shared by the
// console packages.
package common

const (
	// AuthorizationHeaderName carries the admin bearer token.
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// SessionTokenKey is the metadata key the session token is persisted under.
	SessionTokenKey = "session_token"
)
