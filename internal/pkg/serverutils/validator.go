package serverutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateRequest runs struct-tag validation and folds the failures
// into a single ErrValidation the error handler can map to a 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.E(apperrors.ErrValidation, "invalid request")
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
	}
	return apperrors.E(apperrors.ErrValidation, "%s", strings.Join(messages, "; "))
}
