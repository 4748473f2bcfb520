package transport

import (
	"bytes"
	"encoding/json"
)

// Field is an optional JSON member that remembers whether it appeared in the body.
// A present null leaves Set true and Value nil.
type Field[T any] struct {
	Set   bool
	Value *T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// ApplyTo overwrites *dst only when the field was present.
func (f Field[T]) ApplyTo(dst **T) {
	if f.Set {
		*dst = f.Value
	}
}

func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}
