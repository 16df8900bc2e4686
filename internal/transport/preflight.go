package transport

import (
	"strings"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// testOnlyOperation identifies an administrative test action by two path
// substrings: the API family segment and the action segment.
type testOnlyOperation struct {
	family string
	action string
	name   string
}

// testOnlyOperations lists every operation that must never run against
// production. New test-only operations are added by appending a row.
var testOnlyOperations = []testOnlyOperation{
	{family: "/epayment/", action: "/approve", name: "forceApprove"},
	{family: "/recurring/", action: "/accept", name: "forceAccept"},
}

// Preflight decides whether a descriptor may be sent at all given the
// client configuration. It returns an empty string to proceed, or a short
// human-readable reason when the request must not be sent. Pure function,
// no I/O.
func Preflight(cfg Config, d api.Descriptor) string {
	if cfg.UseTestMode {
		return ""
	}
	for _, op := range testOnlyOperations {
		if strings.Contains(d.Path, op.family) && strings.Contains(d.Path, op.action) {
			return op.name + " is only available in the test environment"
		}
	}
	return ""
}
