package tmdb

import "fmt"

// AuthError means no usable API key is configured. It is raised before any
// network call is made.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "tmdb auth: " + e.Reason
}

// UpstreamError is any non-2xx response from the TMDB API. Status and Body
// are surfaced verbatim to the caller.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("tmdb returned status %d: %s", e.Status, e.Body)
}

// NetworkError is a timeout or connection failure. Not retried at this layer.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "tmdb request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
