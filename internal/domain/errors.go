package domain

import "errors"

var (
	// ErrBadRequest marks client input that cannot be served.
	ErrBadRequest = errors.New("bad request")
	// ErrUpstream marks a provider-side failure worth retrying.
	ErrUpstream = errors.New("upstream provider error")
	// ErrUpstreamThrottled marks a provider rate-limit response.
	ErrUpstreamThrottled = errors.New("upstream provider throttled")
	// ErrDecode marks a provider payload the service could not parse.
	ErrDecode = errors.New("malformed provider payload")
	// ErrThreadNotFound marks lookups of unknown search threads.
	ErrThreadNotFound = errors.New("search thread not found")
	// ErrStaleFetch marks a fetch superseded by a newer one on the
	// same thread.
	ErrStaleFetch = errors.New("fetch superseded")
)
