package facts

import (
	"encoding/json"
	"fmt"
)

// Unknown is what an unset field renders and serialises as.
const Unknown = "unknown"

// Value is a write-once field. The zero Value is unknown; the first Set wins and later Sets are ignored,
// so a field filled by its responsible lookup can never be downgraded within a request.
type Value[T any] struct {
	v   T
	set bool
}

// Known returns a Value that is already set to v.
func Known[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// Set stores v if the field is still unknown and reports whether it did.
func (f *Value[T]) Set(v T) bool {
	if f.set {
		return false
	}
	f.v = v
	f.set = true
	return true
}

// Get returns the stored value and whether it is known.
func (f Value[T]) Get() (T, bool) {
	return f.v, f.set
}

// OrElse returns the stored value or def when unknown.
func (f Value[T]) OrElse(def T) T {
	if !f.set {
		return def
	}
	return f.v
}

func (f Value[T]) IsKnown() bool {
	return f.set
}

func (f Value[T]) String() string {
	if !f.set {
		return Unknown
	}
	return fmt.Sprint(f.v)
}

func (f Value[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return json.Marshal(Unknown)
	}
	return json.Marshal(f.v)
}
