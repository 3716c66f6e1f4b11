package validate

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UsesJSONNames(t *testing.T) {
	type request struct {
		Email string `json:"email,omitempty" validate:"required"`
		Plain string `validate:"required"`
	}

	err := New().Struct(request{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	assert.Equal(t, "email", verrs[0].Field())
	assert.Equal(t, "Plain", verrs[1].Field())
}

func TestEmail(t *testing.T) {
	v := New()
	assert.True(t, Email(v, "a@b.com"))
	assert.True(t, Email(v, "first.last+tag@sub.example.org"))
	assert.False(t, Email(v, ""))
	assert.False(t, Email(v, "not-an-email"))
	assert.False(t, Email(v, "a@"))
}
