// Package client is the HTTP client for the filekeeper API used by the CLI.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Responses with a status
// of 400 or above become *APIError carrying the server's message; 401 and
// 404 also match ErrUnauthorized and ErrNotFound through errors.Is.
//
// A Client holds the session token set with SetToken and is not safe for
// concurrent SetToken calls.
package client
