// Package common contains shared constants and sentinel errors used across
// task tracker components.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the session token.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token value inside AuthorizationHeaderName.
	BearerScheme = "Bearer"

	// TokenStorageKey is the well-known key the client persists its token under.
	TokenStorageKey = "token"

	// PlaceholderIDPrefix marks ids the client assigned before the server confirmed a task.
	PlaceholderIDPrefix = "tmp-"
)
