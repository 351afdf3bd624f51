package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Services wrap these with E so handlers can map a
// failure to a status code without matching on message strings.
var (
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtraction        = errors.New("extraction error")
	ErrAIService         = errors.New("ai service error")
)

// E wraps a sentinel kind with a human-readable message.
// errors.Is(err, kind) keeps working on the result.
func E(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Message strips the "<kind>: " prefix added by E, returning the part
// meant for the client. Falls back to the full error text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, kind := range []error{
		ErrValidation, ErrConflict, ErrUnauthorized, ErrNotFound,
		ErrUnsupportedFormat, ErrExtraction, ErrAIService,
	} {
		if errors.Is(err, kind) {
			prefix := kind.Error() + ": "
			msg := err.Error()
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}
