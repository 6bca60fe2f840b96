package api

import (
	"fmt"
	"reflect"
)

// FieldError reports a recoverable per-field read failure. The field is
// omitted and traversal of its siblings continues; the error is surfaced
// through the serializer's logger and optional diagnostic callback.
type FieldError struct {
	Type  reflect.Type
	Field string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("read field %s.%s: %v", e.Type, e.Field, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}
