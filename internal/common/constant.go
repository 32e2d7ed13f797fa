// Package common contains shared constants, sentinel errors and small
// helpers used by both the taskboard client and the stub backend.
package common

const (
	// TokenMetadataKey is the well-known key under which the client persists
	// the bearer token.
	TokenMetadataKey = "token"

	// TokenCookieName is the HTTP-only cookie carrying the session token.
	TokenCookieName = "token"

	// AuthorizationHeaderName carries the bearer fallback credential.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags every outgoing request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// ServerIDKey and ClientIDKey name the document identifier on the wire
	// and in client-side entities; ServerVersionKey is dropped by the client.
	ServerIDKey      = "_id"
	ClientIDKey      = "id"
	ServerVersionKey = "__v"
)
