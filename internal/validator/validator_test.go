package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
	Action   string `json:"action" validate:"omitempty,is-contact-action"`
}

func TestValidatePasses(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&sampleRequest{Username: "alice", Email: "a@b.com", Action: "accept"}))
	assert.NoError(t, v.Validate(&sampleRequest{Username: "alice"}))
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Username: "", Email: "nope"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "username")
	assert.Contains(t, vErr.Errors, "email")
	assert.Equal(t, "This field is required", vErr.Errors["username"])
}

func TestContactActionRule(t *testing.T) {
	v := New()

	for _, action := range []string{"accept", "reject"} {
		assert.NoError(t, v.Validate(&sampleRequest{Username: "alice", Action: action}))
	}

	err := v.Validate(&sampleRequest{Username: "alice", Action: "maybe"})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be 'accept' or 'reject'", vErr.Errors["action"])
}
