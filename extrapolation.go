package altcurve

import (
	"fmt"
	"math"
)

// Extrapolation describes how a curve behaves outside of its keyframes'
// time range. It is chosen separately for either side of the range, similar
// to pre- and post-infinity in Maya or Unreal Engine.
type Extrapolation int

const (
	// Constant holds the value of the first or last keyframe.
	Constant Extrapolation = iota
	// Linear continues the slope between the two outermost keyframes.
	Linear
	// Cycle repeats the curve.
	Cycle
	// CycleOffset repeats the curve, offsetting each repetition by the
	// difference between the last and first keyframe values so that
	// cycles continue where the previous one ended.
	CycleOffset
	// Oscillate repeats the curve, playing every other repetition backwards.
	Oscillate
)

var extrapolationNames = [...]string{
	Constant:    "Constant",
	Linear:      "Linear",
	Cycle:       "Cycle",
	CycleOffset: "CycleOffset",
	Oscillate:   "Oscillate",
}

// Valid reports whether e is one of the defined extrapolation modes.
func (e Extrapolation) Valid() bool { return e >= 0 && int(e) < len(extrapolationNames) }

// String returns the name of e, as used in serialized curves.
func (e Extrapolation) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Extrapolation(%d)", int(e))
	}
	return extrapolationNames[e]
}

// MarshalText implements [encoding.TextMarshaler]. It fails for invalid
// modes.
func (e Extrapolation) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEnum, e)
	}
	return []byte(extrapolationNames[e]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Extrapolation) UnmarshalText(b []byte) error {
	v, err := parseEnum[Extrapolation](extrapolationNames[:], "extrapolation", b)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// The extrapolation handlers map a time outside of the time range to a time
// inside it, plus a vertical offset to add to the value found there. They
// require at least two keyframes. A zero time span, or two outermost
// keyframes sharing a time in the Linear case, yields NaN or infinities.

func (c Curve) handlePre(t float64) (float64, float64) {
	first := c.keys[0]
	last := c.keys[len(c.keys)-1]
	tmin, tmax := c.timeRange.Min, c.timeRange.Max
	span := tmax - tmin

	switch c.pre {
	case Constant:
		return float64(first.Time), 0
	case Linear:
		second := c.keys[1]
		slope := (float64(second.Value) - float64(first.Value)) / (float64(second.Time) - float64(first.Time))
		return float64(first.Time), slope * (t - float64(first.Time))
	case Cycle:
		return tmax - math.Mod(tmin-t, span), 0
	case CycleOffset:
		d := tmin - t
		offset := -(math.Floor(d/span) + 1) * (float64(last.Value) - float64(first.Value))
		return tmax - math.Mod(d, span), offset
	case Oscillate:
		return oscillate(tmin-t, tmin, tmax), 0
	default:
		panic(fmt.Sprintf("unhandled case %v", c.pre))
	}
}

func (c Curve) handlePost(t float64) (float64, float64) {
	first := c.keys[0]
	last := c.keys[len(c.keys)-1]
	tmin, tmax := c.timeRange.Min, c.timeRange.Max
	span := tmax - tmin

	switch c.post {
	case Constant:
		return float64(last.Time), 0
	case Linear:
		prev := c.keys[len(c.keys)-2]
		slope := (float64(last.Value) - float64(prev.Value)) / (float64(last.Time) - float64(prev.Time))
		return float64(last.Time), slope * (t - float64(last.Time))
	case Cycle:
		return tmin + math.Mod(t-tmin, span), 0
	case CycleOffset:
		d := t - tmin
		offset := math.Floor(d/span) * (float64(last.Value) - float64(first.Value))
		return tmin + math.Mod(d, span), offset
	case Oscillate:
		return oscillate(t-tmin, tmin, tmax), 0
	default:
		panic(fmt.Sprintf("unhandled case %v", c.post))
	}
}

// oscillate maps a distance d from the start of the range to a time within
// [tmin, tmax], reflecting every odd cycle.
func oscillate(d, tmin, tmax float64) float64 {
	span := tmax - tmin
	cycles := math.Floor(d / span)
	t := tmin + math.Mod(d, span)
	if math.Mod(cycles, 2) == 1 {
		t = tmax - (t - tmin)
	}
	return t
}
