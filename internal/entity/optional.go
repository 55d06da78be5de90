package entity

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Optional is a patch field: it remembers whether a value was supplied at all.
// For pointer types an explicit JSON null is a supplied value that clears the field.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a supplied Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// UnmarshalJSON marks the field as supplied. A null for a non-pointer type is ignored.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) && reflect.TypeFor[T]().Kind() != reflect.Pointer {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value = v
	o.set = true
	return nil
}

func assign[T any](o Optional[T], dst *T) {
	if v, ok := o.Get(); ok {
		*dst = v
	}
}
