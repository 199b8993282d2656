package shared

import (
	"errors"
	"fmt"
)

// RequestError is used when we want a specific error message and StatusCode.
// sane defaults are listed below. For routes that need custom error messages,
// a request error can be generated and a handler expects the router to return
// the exact message inside the request error msg
//
// Error codes should be bubbled where the RequestError msg is expected to be
// returned to the user. If the user should see a generic error message but
// the error chain should include more detail for logging purposes, then a generic
// error should be added that provides context
type RequestError struct {
	StatusCode int
	Err        error
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status %d: err %v", r.StatusCode, r.Err)
}

var (
	ErrMissingSession = &RequestError{Err: errors.New("missing session token"), StatusCode: 401}
	ErrUnauthorized   = &RequestError{Err: errors.New("unauthorized"), StatusCode: 401}

	ErrInvalidRequest = &RequestError{Err: errors.New("invalid request body"), StatusCode: 400}
	ErrMissingPrompt  = &RequestError{Err: errors.New("prompt is required"), StatusCode: 400}
	ErrMissingHTML    = &RequestError{Err: errors.New("html is required"), StatusCode: 400}
	ErrMissingTitle   = &RequestError{Err: errors.New("title is required when creating a new space"), StatusCode: 400}

	ErrRateLimited = &RequestError{Err: errors.New("anonymous request limit reached, log in to continue"), StatusCode: 429}

	ErrNoAvailableCredential = &RequestError{Err: errors.New("no inference credential is currently available"), StatusCode: 503}

	// Returned when generation fails before the first fragment reaches the
	// caller. Any upstream failure maps to this hint, it is a heuristic.
	ErrUpstreamGeneration = &RequestError{
		Err:        errors.New("generation failed, the request may exceed the model context window; shorten the prompt or start from a smaller document"),
		StatusCode: 500,
	}

	ErrInternalServerError = &RequestError{Err: errors.New("internal server error"), StatusCode: 500}
)

// NewPublishError surfaces the hosting platform's own message to the caller.
// No local retry is attempted.
func NewPublishError(platformMsg string) *RequestError {
	return &RequestError{Err: fmt.Errorf("publish failed: %s", platformMsg), StatusCode: 500}
}
