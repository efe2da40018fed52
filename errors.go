package altcurve

import (
	"errors"
	"fmt"
)

var (
	// ErrVersion is returned for serialized curves with a missing or
	// unsupported version.
	ErrVersion = errors.New("unsupported version")
	// ErrUnknownField is returned for serialized curves with a property
	// whose name doesn't exactly match a known one.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownEnum is returned for enum names and values outside their
	// defined set.
	ErrUnknownEnum = errors.New("unknown enum value")
	// ErrUnsorted is reported by [Curve.Validate] for keyframes not in time order.
	ErrUnsorted = errors.New("keyframes out of order")
	// ErrDuplicateTime is reported by [Curve.Validate] for keyframes sharing a time.
	ErrDuplicateTime = errors.New("keyframes share a time")
)

// DecodeError is returned when a serialized curve cannot be decoded.
type DecodeError struct {
	// Format is "json" or "yaml".
	Format string
	// Field is the offending property, if known.
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("altcurve: decoding %s: field %q: %s", e.Format, e.Field, e.Err)
	}
	return fmt.Sprintf("altcurve: decoding %s: %s", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
