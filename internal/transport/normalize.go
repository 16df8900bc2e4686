package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// Fixed messages for failures where the response body carries nothing a
// caller can act on.
const (
	msgRetryExhausted = "Retry limit reached. Could not get a response from the server"
	msgConnection     = "Could not connect to the API"
	msgForbidden      = "Your credentials are not authorized for this product. Visit the merchant portal to review your API keys and product subscriptions"
	msgUnknown        = "Unknown error"
)

// normalize converts anything that reached a failure path into one
// api.Error with a non-empty message. It is total over arbitrary input:
// errors, parsed JSON bodies of any shape, raw strings, nil. First match
// wins.
func normalize(failure any, raw []byte, status int) *api.Error {
	if err, ok := failure.(error); ok {
		var exhausted *exhaustedError
		if errors.As(err, &exhausted) {
			return &api.Error{
				Kind:       api.KindRetryExhausted,
				StatusCode: status,
				Message:    msgRetryExhausted,
				Raw:        raw,
			}
		}

		var terr *transportError
		if errors.As(err, &terr) && terr.typ == errorConnection {
			return &api.Error{
				Kind:    api.KindConnection,
				Message: msgConnection,
				Raw:     raw,
			}
		}
	}

	// Forbidden responses from the upstream gateway carry no useful body,
	// so the fixed message overrides all body-based classification.
	if status == http.StatusForbidden {
		return &api.Error{
			Kind:       api.KindForbidden,
			StatusCode: status,
			Message:    msgForbidden,
			Raw:        raw,
		}
	}

	if err, ok := failure.(error); ok {
		message := err.Error()
		if message == "" {
			message = msgUnknown
		}
		return &api.Error{
			Kind:       api.KindUnknown,
			StatusCode: status,
			Message:    message,
			Raw:        raw,
		}
	}

	if obj, ok := failure.(map[string]any); ok {
		return &api.Error{
			Kind:       api.KindProblem,
			StatusCode: status,
			Message:    extractMessage(obj),
			Problem:    parseProblem(raw),
			Raw:        raw,
		}
	}

	switch v := failure.(type) {
	case nil:
		return &api.Error{
			Kind:       api.KindUnknown,
			StatusCode: status,
			Message:    msgUnknown,
			Raw:        raw,
		}
	case string:
		message := strings.TrimSpace(v)
		if message == "" {
			message = msgUnknown
		}
		return &api.Error{
			Kind:       api.KindUnknown,
			StatusCode: status,
			Message:    message,
			Raw:        raw,
		}
	default:
		return &api.Error{
			Kind:       api.KindUnknown,
			StatusCode: status,
			Message:    fmt.Sprintf("%v", v),
			Raw:        raw,
		}
	}
}

// extractMessage picks the best single human-readable line from a problem
// payload of unknown flavor. The input is unstructured JSON from several
// independent upstream services, so this is an ordered sequence of
// duck-typed checks rather than a type hierarchy.
func extractMessage(obj map[string]any) string {
	if detail, ok := obj["detail"].(string); ok && detail != "" {
		return detail
	}

	if entries, ok := obj["extraDetails"].([]any); ok && len(entries) > 0 {
		if first, ok := entries[0].(map[string]any); ok {
			name, _ := first["name"].(string)
			reason, _ := first["reason"].(string)
			if name != "" || reason != "" {
				return name + " - " + reason
			}
			field, _ := first["field"].(string)
			text, _ := first["text"].(string)
			if field != "" || text != "" {
				return field + " - " + text
			}
		}
	}

	// Field-keyed error maps. Go maps have no iteration order, so keys
	// are scanned sorted to keep the picked message deterministic.
	if errs, ok := obj["errors"].(map[string]any); ok && len(errs) > 0 {
		keys := make([]string, 0, len(errs))
		for key := range errs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			list, ok := errs[key].([]any)
			if !ok {
				continue
			}
			for _, item := range list {
				if s, ok := item.(string); ok && s != "" {
					return s
				}
			}
		}
	}

	if params, ok := obj["invalidParams"].([]any); ok && len(params) > 0 {
		if first, ok := params[0].(map[string]any); ok {
			name, _ := first["name"].(string)
			reason, _ := first["reason"].(string)
			if name != "" || reason != "" {
				return name + " - " + reason
			}
		}
	}

	return msgUnknown
}

// parseProblem decodes the typed problem payload, best effort.
func parseProblem(raw []byte) *api.Problem {
	if len(raw) == 0 {
		return nil
	}
	var p api.Problem
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}
