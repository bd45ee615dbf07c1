// Package validation registers the custom binding tags used by request DTOs
// on gin's validator engine.
package validation

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NotBlankTag rejects strings made only of whitespace
const NotBlankTag = "notblank"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := Register(v); err != nil {
			panic(err)
		}
	}
}

// Register installs the custom tags on v
func Register(v *validator.Validate) error {
	return v.RegisterValidation(NotBlankTag, notBlank)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
