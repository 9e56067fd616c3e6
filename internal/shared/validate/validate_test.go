package validate

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Phone    string `validate:"phone"`
	Template string `validate:"template"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("phone", phoneValid))
	require.NoError(t, v.RegisterValidation("template", templateValid))
	return v
}

func TestPhoneValidation(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(contactForm{Phone: "+1 (555) 123-4567"}))
	assert.NoError(t, v.Struct(contactForm{Phone: ""}))
	assert.Error(t, v.Struct(contactForm{Phone: "123"}))
	assert.Error(t, v.Struct(contactForm{Phone: "not-a-phone"}))
}

func TestTemplateValidation(t *testing.T) {
	v := newValidator(t)

	for _, name := range []string{"modern", "professional", "creative", "ats", "dark", ""} {
		assert.NoError(t, v.Struct(contactForm{Template: name}), name)
	}
	assert.Error(t, v.Struct(contactForm{Template: "fancy"}))
}

func TestKnownTemplate(t *testing.T) {
	assert.True(t, KnownTemplate("ats"))
	assert.False(t, KnownTemplate("fancy"))
}
