package transport

import "fmt"

// errorType classifies internal transport failures for the retry decision.
type errorType string

const (
	// errorConnection indicates network or DNS errors.
	errorConnection errorType = "connection"

	// errorServer indicates a 5xx response.
	errorServer errorType = "server"

	// errorCancelled indicates context cancellation.
	errorCancelled errorType = "cancelled"

	// errorInvalid indicates the request itself could not be constructed.
	errorInvalid errorType = "invalid_request"
)

// transportError is the internal channel between the response interpreter
// and the retry loop. Retryable is an explicit, closed decision: only
// errors carrying Retryable == true are eligible for another attempt.
// transportError never escapes the pipeline; every failure is normalized
// into an api.Error before it reaches a caller.
type transportError struct {
	typ        errorType
	statusCode int
	message    string
	retryable  bool
	body       []byte
	cause      error
}

// Error implements the error interface.
func (e *transportError) Error() string {
	if e.statusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.typ, e.statusCode, e.message)
	}
	return fmt.Sprintf("%s error: %s", e.typ, e.message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *transportError) Unwrap() error {
	return e.cause
}

// exhaustedError marks that every allowed attempt failed transiently.
// The normalizer turns it into the fixed retry-limit message.
type exhaustedError struct {
	last error
}

func (e *exhaustedError) Error() string {
	return fmt.Sprintf("retry limit reached: %v", e.last)
}

func (e *exhaustedError) Unwrap() error {
	return e.last
}
