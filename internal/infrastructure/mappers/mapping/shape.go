package mapping

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// Kind is the JSON kind a structural key must have.
type Kind int

const (
	KindObject Kind = iota
	KindArray
)

func (k Kind) String() string {
	if k == KindArray {
		return "array"
	}
	return "object"
}

// Shape lists the structural keys of a payload and their kinds. Absent or
// null keys are allowed; present keys of the wrong kind are not.
type Shape map[string]Kind

// ShapeError reports a structural key of the wrong kind.
type ShapeError struct {
	Key  string
	Want Kind
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("field %q: want %s, got %s", e.Key, e.Want, e.Got)
}

// Check validates obj against the shape. Keys are checked in sorted order
// so the reported error is stable.
func (s Shape) Check(obj coerce.Object) error {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		want := s[key]
		_, isArray := v.([]any)
		isObject := coerce.AsObject(v) != nil
		if (want == KindObject && isObject) || (want == KindArray && isArray) {
			continue
		}
		return &ShapeError{Key: key, Want: want, Got: kindOf(v)}
	}
	return nil
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any, coerce.Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return "number"
	}
}
