package validate

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var templateNames = map[string]struct{}{
	"modern":       {},
	"professional": {},
	"creative":     {},
	"ats":          {},
	"dark":         {},
}

// Register installs custom validation tags on gin's request binding
// validator. Call once at startup.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("phone", phoneValid)
	_ = v.RegisterValidation("template", templateValid)
}

func phoneValid(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw)
	return phonePattern.MatchString(cleaned)
}

func templateValid(fl validator.FieldLevel) bool {
	name := strings.TrimSpace(fl.Field().String())
	if name == "" {
		return true
	}
	_, ok := templateNames[name]
	return ok
}

// KnownTemplate reports whether name is a supported resume template.
func KnownTemplate(name string) bool {
	_, ok := templateNames[name]
	return ok
}
