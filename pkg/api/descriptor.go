package api

// Descriptor is a data-only description of one HTTP call to be made against
// the Nordpay APIs. Descriptors are produced by per-operation factory
// functions and consumed by the request builder; they carry no client
// configuration and are discarded after one use.
type Descriptor struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string

	// Path is the path relative to the environment host, including any
	// embedded resource identifiers and query string. Never an absolute URL.
	Path string

	// Body is serialized as JSON when non-nil.
	Body any

	// Token is the bearer token for the Authorization header.
	// Empty for operations that authenticate by other means.
	Token string

	// AdditionalHeaders are merged on top of the default header set.
	// Protected headers (Authorization, subscription key, merchant serial
	// number) cannot be overridden here.
	AdditionalHeaders map[string]string

	// OmitHeaders lists header names to remove from the built request,
	// applied after AdditionalHeaders. Any header may be removed,
	// defaults included.
	OmitHeaders []string
}
