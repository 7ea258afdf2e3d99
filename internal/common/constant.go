// Package common contains shared constants and sentinel errors used across
// the task manager server and client.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"
