package vbz_client

import "fmt"

// maxDiagnosticBodyLen bounds how much of a failed response body is kept
// for diagnostics. The body is logged, never shown to the end consumer.
const maxDiagnosticBodyLen = 512

// APIError is returned when the endpoint answered with a non-success
// status. The truncated body is diagnostic material only.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("VBZ API returned status %d", e.StatusCode)
}

// TransportError is returned when the endpoint could not be reached at
// all (DNS failure, refused connection, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach VBZ API: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func truncateBody(body []byte) string {
	if len(body) > maxDiagnosticBodyLen {
		return string(body[:maxDiagnosticBodyLen])
	}
	return string(body)
}
