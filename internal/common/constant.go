// Package common contains shared constants and sentinel errors used across
// carbook components.
package common

// AuthHeaderName is the HTTP header carrying the bearer token.
const AuthHeaderName = "Authorization"

// BearerSchema is the expected prefix of the Authorization header value.
const BearerSchema = "Bearer "
