// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package piste

import "fmt"

// AuthError reports a failure to obtain or use PISTE credentials: missing
// client id/secret, a non-success response from the token endpoint, or a
// token response without an access token. It is fatal to the call and is
// never retried by the transport.
type AuthError struct {
	// Status and Body are set when the token endpoint answered with a
	// non-success status.
	Status int
	Body   string
	Reason string
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("piste auth failed (status=%d, body=%s)", e.Status, e.Body)
	}
	return "piste auth failed: " + e.Reason
}

// APIError reports a persistent error response from the Legifrance API:
// any status >= 400 not absorbed by the retry policy, or a success response
// whose body is not valid JSON.
type APIError struct {
	Endpoint string
	Status   int
	Body     string
	Reason   string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("legifrance %s: %s (status=%d)", e.Endpoint, e.Reason, e.Status)
	}
	return fmt.Sprintf("legifrance %s returned an error (status=%d, body=%s)", e.Endpoint, e.Status, e.Body)
}

// ExhaustedError reports that the transport ran out of retry attempts on
// transient failures (429/5xx statuses, network errors, timeouts). It wraps
// the last underlying failure.
type ExhaustedError struct {
	Endpoint string
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("legifrance %s failed after retries: %v", e.Endpoint, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }
