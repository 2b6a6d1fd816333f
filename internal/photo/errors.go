// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package photo

import "errors"

// Kind classifies why a run failed.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork covers transport failures, timeouts, and non-2xx responses.
	KindNetwork
	// KindValidation means the payload was too small to be an image.
	KindValidation
	// KindProcessing covers decode, encode, and filesystem failures.
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Error is returned by Run and Convert for every failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
