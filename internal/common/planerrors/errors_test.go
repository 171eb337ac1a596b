package planerrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrMalformedRequestMessage(t *testing.T) {
	err := &ErrMalformedRequest{Request: "wf1", Field: "TaskChain", Message: "expected a positive integer"}
	assert.Equal(t, `request "wf1": malformed request field "TaskChain": expected a positive integer`, err.Error())

	err = &ErrMalformedRequest{Message: "missing task"}
	assert.Equal(t, "malformed request: missing task", err.Error())
}

func TestErrInvalidStateMessage(t *testing.T) {
	err := &ErrInvalidState{Request: "wf1", Message: "no input dataset"}
	assert.Equal(t, `request "wf1": no input dataset`, err.Error())
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	var target *ErrInvalidState
	err := errors.Wrap(&ErrInvalidState{Message: "no input dataset"}, "planning failed")
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, "no input dataset", target.Message)
}
