package altcurve

import (
	"fmt"
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Rng returns the range [min, max].
func Rng(min, max float64) Range {
	return Range{Min: min, Max: max}
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// Size returns Max − Min.
func (r Range) Size() float64 {
	return r.Max - r.Min
}

// Contains reports whether v lies within the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Union returns the smallest range containing both r and o.
func (r Range) Union(o Range) Range {
	return Range{
		Min: min(r.Min, o.Min),
		Max: max(r.Max, o.Max),
	}
}

// UnionValue returns the smallest range containing both r and v.
func (r Range) UnionValue(v float64) Range {
	return Range{
		Min: min(r.Min, v),
		Max: max(r.Max, v),
	}
}

// Lerp maps t ∈ [0, 1] onto the range.
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Normalize maps v onto [0, 1] relative to the range. It is the inverse of
// [Range.Lerp]. The result is NaN or infinite for an empty range.
func (r Range) Normalize(v float64) float64 {
	return (v - r.Min) / (r.Max - r.Min)
}

// Pad grows the range on both sides by fraction of its size. Ranges smaller
// than 1 are padded as if they had size 1, so that flat curves still get
// some room.
func (r Range) Pad(fraction float64) Range {
	d := max(1, r.Size()) * fraction
	return Range{
		Min: r.Min - d,
		Max: r.Max + d,
	}
}

// Bounds is the extent of a curve in both time and value.
type Bounds struct {
	Time  Range
	Value Range
}

func (b Bounds) String() string {
	return fmt.Sprintf("time %s × value %s", b.Time, b.Value)
}

// Pad pads both axes. See [Range.Pad].
func (b Bounds) Pad(fraction float64) Bounds {
	return Bounds{
		Time:  b.Time.Pad(fraction),
		Value: b.Value.Pad(fraction),
	}
}
