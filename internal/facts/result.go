package facts

import (
	"errors"
	"fmt"
)

// Outcome tells apart the ways a lookup can end without a value.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeUnavailable Outcome = "unavailable"
)

// ErrNotFound is returned by lookups when the source answered but has no such object.
var ErrNotFound = errors.New("not found")

// Result carries a lookup value, or the reason it is missing.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Reason  string
}

func OK[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: OutcomeOK}
}

// FromError maps err to a not-found or unavailable result.
func FromError[T any](err error) Result[T] {
	if errors.Is(err, ErrNotFound) {
		return Result[T]{Outcome: OutcomeNotFound, Reason: err.Error()}
	}
	return Result[T]{Outcome: OutcomeUnavailable, Reason: err.Error()}
}

func (r Result[T]) Ok() bool {
	return r.Outcome == OutcomeOK
}

func (r Result[T]) String() string {
	if r.Ok() {
		return fmt.Sprintf("ok: %v", r.Value)
	}
	return fmt.Sprintf("%s: %s", r.Outcome, r.Reason)
}
