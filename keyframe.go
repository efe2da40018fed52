package altcurve

import (
	"cmp"
	"fmt"
)

// Interpolation describes how values between a keyframe and the next one are
// computed. The interpolation of a segment is always that of its left
// keyframe.
type Interpolation int

const (
	// CubicInterp interpolates with a cubic Bézier shaped by the keyframes'
	// tangents.
	CubicInterp Interpolation = iota
	// LinearInterp interpolates along a straight line.
	LinearInterp
	// ConstantInterp holds the left keyframe's value, producing a stepped
	// curve.
	ConstantInterp
)

var interpolationNames = [...]string{
	CubicInterp:    "Cubic",
	LinearInterp:   "Linear",
	ConstantInterp: "Constant",
}

// Valid reports whether i is one of the defined interpolation modes.
func (i Interpolation) Valid() bool { return i >= 0 && int(i) < len(interpolationNames) }

// String returns the name of i, as used in serialized curves.
func (i Interpolation) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
	return interpolationNames[i]
}

// MarshalText implements [encoding.TextMarshaler]. It fails for invalid
// modes.
func (i Interpolation) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnum, i)
	}
	return []byte(interpolationNames[i]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Names are case
// sensitive.
func (i *Interpolation) UnmarshalText(b []byte) error {
	v, err := parseEnum[Interpolation](interpolationNames[:], "interpolation", b)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// TangentMode controls how a keyframe's tangents are maintained. It does not
// affect evaluation, which only reads the tangent values, but it decides
// which keyframes [RecalcAutoTangents] rewrites and how the tangent editing
// helpers behave.
type TangentMode int

const (
	// Automatic tangents are derived from the slope between the surrounding
	// keyframes.
	Automatic TangentMode = iota
	// Mirrored tangents always share one value.
	Mirrored
	// Split tangents are controlled independently.
	Split
)

var tangentModeNames = [...]string{
	Automatic: "Automatic",
	Mirrored:  "Mirrored",
	Split:     "Split",
}

// Valid reports whether m is one of the defined tangent modes.
func (m TangentMode) Valid() bool { return m >= 0 && int(m) < len(tangentModeNames) }

// String returns the name of m, as used in serialized curves.
func (m TangentMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("TangentMode(%d)", int(m))
	}
	return tangentModeNames[m]
}

// MarshalText implements [encoding.TextMarshaler]. It fails for invalid
// modes.
func (m TangentMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnum, m)
	}
	return []byte(tangentModeNames[m]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *TangentMode) UnmarshalText(b []byte) error {
	v, err := parseEnum[TangentMode](tangentModeNames[:], "tangent mode", b)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func parseEnum[T ~int](names []string, kind string, b []byte) (T, error) {
	s := string(b)
	for i, name := range names {
		if name == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownEnum, kind, s)
}

// Keyframe is a single control point of a curve.
//
// The zero value is a cubic keyframe with automatic tangents at (0, 0).
type Keyframe struct {
	Time  float32
	Value float32

	// Interpolation is used between this keyframe and the next one.
	Interpolation Interpolation

	// TangentIn and TangentOut are the incoming and outgoing slopes, as
	// rise over run. They only matter for cubic segments.
	TangentIn   float32
	TangentOut  float32
	TangentMode TangentMode
}

// Key returns a keyframe at (time, value) with the given interpolation,
// automatic tangent mode and flat tangents.
func Key(time, value float32, interp Interpolation) Keyframe {
	return Keyframe{Time: time, Value: value, Interpolation: interp}
}

// CubicKey returns a cubic keyframe with the given tangent mode and tangents.
func CubicKey(time, value float32, mode TangentMode, in, out float32) Keyframe {
	return Keyframe{
		Time:          time,
		Value:         value,
		Interpolation: CubicInterp,
		TangentIn:     in,
		TangentOut:    out,
		TangentMode:   mode,
	}
}

func (k Keyframe) String() string {
	if k.Interpolation != CubicInterp {
		return fmt.Sprintf("(%g, %g %s)", k.Time, k.Value, k.Interpolation)
	}
	return fmt.Sprintf("(%g, %g %s %s in=%g out=%g)",
		k.Time, k.Value, k.Interpolation, k.TangentMode, k.TangentIn, k.TangentOut)
}

// WithTangentIn returns k with its incoming tangent set to v, following the
// rules of its tangent mode. Mirrored keyframes update both tangents, split
// keyframes only the incoming one. Editing an automatic tangent converts the
// keyframe to mirrored, since the value is now user-provided.
func (k Keyframe) WithTangentIn(v float32) Keyframe {
	switch k.TangentMode {
	case Mirrored:
		k.TangentIn, k.TangentOut = v, v
	case Split:
		k.TangentIn = v
	case Automatic:
		k.TangentIn, k.TangentOut = v, v
		k.TangentMode = Mirrored
	default:
		panic(fmt.Sprintf("unhandled case %v", k.TangentMode))
	}
	return k
}

// WithTangentOut is like [Keyframe.WithTangentIn], but for the outgoing tangent.
func (k Keyframe) WithTangentOut(v float32) Keyframe {
	switch k.TangentMode {
	case Mirrored:
		k.TangentIn, k.TangentOut = v, v
	case Split:
		k.TangentOut = v
	case Automatic:
		k.TangentIn, k.TangentOut = v, v
		k.TangentMode = Mirrored
	default:
		panic(fmt.Sprintf("unhandled case %v", k.TangentMode))
	}
	return k
}

// Flatten returns k with both tangents set to zero. Automatic cubic
// keyframes become mirrored so that the flat tangents survive the next
// tangent recalculation.
func (k Keyframe) Flatten() Keyframe {
	k.TangentIn, k.TangentOut = 0, 0
	if k.Interpolation == CubicInterp && k.TangentMode == Automatic {
		k.TangentMode = Mirrored
	}
	return k
}

// CompareTime orders keyframes by their time. It is the ordering used for
// searching and sorting keyframes.
func CompareTime(a, b Keyframe) int {
	return cmp.Compare(a.Time, b.Time)
}
