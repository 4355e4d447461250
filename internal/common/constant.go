package common

const (
	// TokenHeaderName carries the session token on authenticated requests.
	TokenHeaderName = "X-Token"

	// AuthorizationHeaderName carries Basic credentials on /connect.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName echoes the per-request id assigned by the server.
	RequestIDHeaderName = "X-Request-Id"
)
