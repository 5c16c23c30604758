package anki

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate marks note-creation failures caused by Anki's duplicate
// detection. Test with errors.Is; the concrete error is an *APIError.
var ErrDuplicate = errors.New("duplicate note")

// APIError is an error reported in-band by AnkiConnect (the envelope's error
// string was non-null).
type APIError struct {
	Action  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anki: %s: %s", e.Action, e.Message)
}

// Is lets duplicate-note failures match ErrDuplicate. AnkiConnect has no
// structured error codes; the "it is a duplicate" message text is the only
// signal it gives.
func (e *APIError) Is(target error) bool {
	return target == ErrDuplicate && strings.Contains(e.Message, "duplicate")
}
