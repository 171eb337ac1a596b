// Package planerrors contains generic errors returned by the planning core.
// Callers should detect these via errors.As and decide whether to abort
// planning for one workflow or for the whole batch.
//
// If multiple errors occur in some function (e.g., if several request fields
// are malformed), that function should return an error of type
// multierror.Error from package github.com/hashicorp/go-multierror that
// encapsulates those individual errors.
package planerrors

import (
	"fmt"
)

// ErrMalformedRequest indicates that a raw request document could not be
// parsed into a workflow model, e.g., because a declared task chain is
// truncated or a field has the wrong shape.
//
// Request and Field are optional and are omitted from the error message if
// not provided.
type ErrMalformedRequest struct {
	// Name of the request the document belongs to
	Request string
	// The offending document field
	Field string
	// Message describing what is wrong with the field
	Message string
}

func (err *ErrMalformedRequest) Error() (s string) {
	if err.Field != "" {
		s = fmt.Sprintf("malformed request field %q: %s", err.Field, err.Message)
	} else {
		s = fmt.Sprintf("malformed request: %s", err.Message)
	}
	if err.Request != "" {
		s = fmt.Sprintf("request %q: %s", err.Request, s)
	}
	return
}

// ErrInvalidState indicates that an operation was invoked on a workflow whose
// setup sequence has not progressed far enough, e.g., setting a parent
// dataset before an input dataset is known. This is a programming error in
// the orchestrating caller, not a property of the request.
type ErrInvalidState struct {
	// Name of the affected request
	Request string
	// Message describing the violated precondition
	Message string
}

func (err *ErrInvalidState) Error() string {
	if err.Request != "" {
		return fmt.Sprintf("request %q: %s", err.Request, err.Message)
	}
	return err.Message
}
