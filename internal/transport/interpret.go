package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Response is the interpreted outcome of a call that did not fail.
// Body holds the raw bytes; typed decoding happens at the call adapter,
// which tolerates bodies that do not decode into the declared shape.
type Response struct {
	StatusCode int
	Body       []byte
}

// interpret maps a raw status code and body into either a Response or an
// error. The error is one of two closed kinds: a retryable *transportError
// for conditions classified as transient (5xx), or a terminal *api.Error
// for everything the normalizer could classify.
func interpret(status int, body []byte) (*Response, error) {
	if status >= 500 {
		return nil, &transportError{
			typ:        errorServer,
			statusCode: status,
			message:    "transient upstream failure",
			retryable:  true,
			body:       body,
		}
	}

	// 204, and an empty body on any other 2xx, both mean "no content":
	// the caller gets a zero-value payload.
	if status == http.StatusNoContent {
		return &Response{StatusCode: status}, nil
	}

	parsed := parseBody(body)

	if status < 200 || status > 299 {
		return nil, normalize(parsed, body, status)
	}

	return &Response{StatusCode: status, Body: body}, nil
}

// parseBody decodes the body as JSON. A body that is not valid JSON is
// never itself a failure: the trimmed raw text is carried through for the
// normalizer. An empty body parses to nil.
func parseBody(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed)
	}
	return v
}
