package api

import "fmt"

// ErrorKind classifies a normalized failure.
type ErrorKind string

const (
	// KindConnection indicates the transport layer could not reach the host.
	KindConnection ErrorKind = "connection"

	// KindRetryExhausted indicates every retry attempt failed transiently.
	KindRetryExhausted ErrorKind = "retry_exhausted"

	// KindForbidden indicates a 403 from the upstream gateway.
	KindForbidden ErrorKind = "forbidden"

	// KindProblem indicates a structured provider problem payload.
	KindProblem ErrorKind = "problem"

	// KindUnknown indicates a failure that fits none of the above.
	KindUnknown ErrorKind = "unknown"
)

// Error is the normalized form of every failure that can come out of the
// request pipeline. Message is always non-empty and safe to show to a
// human; Raw preserves the original response body for caller-side decoding.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status code, zero for non-HTTP failures.
	StatusCode int

	// Message is the best-effort single human-readable line.
	Message string

	// Problem is the parsed provider payload when the body was a
	// recognizable problem shape, nil otherwise.
	Problem *Problem

	// Raw is the original response body, nil when there was none.
	Raw []byte
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Problem is a superset of the structured error bodies returned by the
// upstream services. The shape varies by API family; absent fields are
// left zero. Callers needing the exact family-specific shape can decode
// Error.Raw themselves.
type Problem struct {
	Type          string              `json:"type,omitempty"`
	Title         string              `json:"title,omitempty"`
	Status        int                 `json:"status,omitempty"`
	Detail        string              `json:"detail,omitempty"`
	Instance      string              `json:"instance,omitempty"`
	TraceID       string              `json:"traceId,omitempty"`
	ExtraDetails  []ErrorDetail       `json:"extraDetails,omitempty"`
	Errors        map[string][]string `json:"errors,omitempty"`
	InvalidParams []ErrorDetail       `json:"invalidParams,omitempty"`
}

// ErrorDetail is one entry of a problem payload's detail list. Upstream
// services use two spellings for the same idea; both are mapped here.
type ErrorDetail struct {
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason,omitempty"`
	Field  string `json:"field,omitempty"`
	Text   string `json:"text,omitempty"`
}
