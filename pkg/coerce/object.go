package coerce

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned by Decode when the payload is valid JSON but not
// a JSON object.
var ErrNotObject = errors.New("payload is not a JSON object")

// Object is a read-only view over a decoded JSON object.
// All accessors are safe on a nil Object.
type Object map[string]any

// Decode parses data as a JSON object. Numbers are kept as json.Number so
// large integers survive the round trip.
func Decode(data []byte) (Object, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("decode payload: %w", ErrNotObject)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode payload: %w", ErrNotObject)
	}
	return Object(obj), nil
}

// AsObject returns v as an Object, or nil when v is not a JSON object.
func AsObject(v any) Object {
	switch m := v.(type) {
	case Object:
		return m
	case map[string]any:
		return Object(m)
	}
	return nil
}

// Has reports whether key is present with a non-null value.
func (o Object) Has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// Value returns the first non-null value among keys.
func (o Object) Value(keys ...string) any {
	for _, key := range keys {
		if v, ok := o[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Object returns the first nested object found among keys.
func (o Object) Object(keys ...string) Object {
	for _, key := range keys {
		if nested := AsObject(o[key]); nested != nil {
			return nested
		}
	}
	return nil
}

// Slice returns the first array found among keys, or an empty slice.
func (o Object) Slice(keys ...string) []any {
	for _, key := range keys {
		if s, ok := o[key].([]any); ok {
			return s
		}
	}
	return []any{}
}

// Objects returns the object elements of the first array found among keys.
// Elements that are not objects are dropped.
func (o Object) Objects(keys ...string) []Object {
	items := o.Slice(keys...)
	out := make([]Object, 0, len(items))
	for _, item := range items {
		if obj := AsObject(item); obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

// Strings returns the string elements of the first array found among keys.
func (o Object) Strings(keys ...string) []string {
	for _, key := range keys {
		if _, ok := o[key].([]any); ok {
			return Strings(o[key])
		}
	}
	return []string{}
}

// String returns the first non-empty string among keys, or "".
func (o Object) String(keys ...string) string {
	for _, key := range keys {
		if s, ok := String(o[key]); ok && s != "" {
			return s
		}
	}
	return ""
}

// Float returns the numeric value of key, or fallback.
func (o Object) Float(key string, fallback float64) float64 {
	if f, ok := Number(o[key]); ok {
		return f
	}
	return fallback
}

// Int returns the numeric value of key truncated to an int, or fallback.
func (o Object) Int(key string, fallback int) int {
	if f, ok := Number(o[key]); ok {
		return int(f)
	}
	return fallback
}

// Bool returns the boolean value of key, or fallback.
func (o Object) Bool(key string, fallback bool) bool {
	if b, ok := Bool(o[key]); ok {
		return b
	}
	return fallback
}
