package altcurve

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// sampleSteps is the number of intervals each cubic segment is sampled at
// when computing its value range.
const sampleSteps = 10

// Curve maps time to value through an ordered sequence of keyframes.
//
// A valid curve has one or more keyframes with distinct times in ascending
// order. [New] does not enforce this; use [Sanitize] or [Curve.Sanitize]
// first. Evaluating a curve whose keyframes are out of order or share times
// produces unspecified values in the affected region, but never panics.
//
// Curves are immutable values and safe for concurrent use. Methods that
// modify a curve return a new one. The zero value is a curve without any
// keyframes that always evaluates to zero.
type Curve struct {
	keys []Keyframe
	pre  Extrapolation
	post Extrapolation

	timeRange  Range
	valueRange Range
	// segRanges has one entry per segment; nil if there are fewer than two
	// keyframes.
	segRanges []Range
}

// New returns a curve with a copy of the given keyframes and extrapolation
// modes. A curve without keyframes gets a single zero [Keyframe].
//
// New panics if pre or post is not a valid extrapolation mode.
func New(keys []Keyframe, pre, post Extrapolation) Curve {
	if !pre.Valid() {
		panic(fmt.Sprintf("invalid pre-infinity extrapolation %v", pre))
	}
	if !post.Valid() {
		panic(fmt.Sprintf("invalid post-infinity extrapolation %v", post))
	}
	for i := range keys {
		if !keys[i].Interpolation.Valid() {
			panic(fmt.Sprintf("keyframe %d: invalid interpolation %v", i, keys[i].Interpolation))
		}
	}

	var c Curve
	if len(keys) == 0 {
		c.keys = []Keyframe{{}}
	} else {
		c.keys = slices.Clone(keys)
	}
	c.pre = pre
	c.post = post
	c.computeRanges()
	return c
}

// Default returns a curve with a single zero keyframe and constant
// extrapolation.
func Default() Curve {
	return New(nil, Constant, Constant)
}

func (c *Curve) computeRanges() {
	first := c.keys[0]
	last := c.keys[len(c.keys)-1]
	c.timeRange = Rng(float64(first.Time), float64(last.Time))
	c.valueRange = Rng(float64(first.Value), float64(first.Value))
	if len(c.keys) < 2 {
		return
	}

	c.segRanges = make([]Range, len(c.keys)-1)
	for i := range c.segRanges {
		a, b := c.keys[i], c.keys[i+1]
		r := Rng(
			min(float64(a.Value), float64(b.Value)),
			max(float64(a.Value), float64(b.Value)),
		)
		if a.Interpolation == CubicInterp {
			// This is an approximation of the segment's extent; sharp
			// tangents can overshoot between samples. See
			// Segment.ValueRange for the exact range.
			ta, tb := float64(a.Time), float64(b.Time)
			for step := 0; step <= sampleSteps; step++ {
				f := float64(step) / sampleSteps
				r = r.UnionValue(interpolate(a, b, ta+(tb-ta)*f))
			}
		}
		c.segRanges[i] = r
	}

	c.valueRange = c.segRanges[0]
	for _, r := range c.segRanges[1:] {
		c.valueRange = c.valueRange.Union(r)
	}
}

// WithKeyframes returns a curve with the same extrapolation modes as c and a
// copy of keys as its keyframes.
func (c Curve) WithKeyframes(keys []Keyframe) Curve {
	return New(keys, c.pre, c.post)
}

// WithExtrapolation returns a copy of c with different extrapolation modes.
func (c Curve) WithExtrapolation(pre, post Extrapolation) Curve {
	return New(c.keys, pre, post)
}

// Keyframes returns a copy of the curve's keyframes.
func (c Curve) Keyframes() []Keyframe { return slices.Clone(c.keys) }

// Len returns the number of keyframes.
func (c Curve) Len() int { return len(c.keys) }

// At returns the i'th keyframe.
func (c Curve) At(i int) Keyframe { return c.keys[i] }

// All returns an iterator over the curve's keyframes and their indices.
func (c Curve) All() iter.Seq2[int, Keyframe] {
	return slices.All(c.keys)
}

// PreInfinity returns the extrapolation mode used before the first keyframe.
func (c Curve) PreInfinity() Extrapolation { return c.pre }

// PostInfinity returns the extrapolation mode used after the last keyframe.
func (c Curve) PostInfinity() Extrapolation { return c.post }

// TimeRange returns the times of the first and last keyframes.
func (c Curve) TimeRange() Range { return c.timeRange }

// TimeSpan returns the duration between the first and last keyframes. It is
// the period of cycling extrapolation modes.
func (c Curve) TimeSpan() float64 { return c.timeRange.Size() }

// ValueRange returns the range of values the curve takes on between its
// first and last keyframes.
//
// For cubic segments, the range is found by sampling each segment at 11
// points. It is suitable for framing a curve in a view, but may be slightly
// smaller than the true extent of sharply curved segments.
func (c Curve) ValueRange() Range { return c.valueRange }

// SegmentValueRanges returns the value range of each segment, computed like
// [Curve.ValueRange]. It has one entry per pair of consecutive keyframes and
// is nil for curves with fewer than two keyframes.
func (c Curve) SegmentValueRanges() []Range { return slices.Clone(c.segRanges) }

// Bounds returns the curve's time and value ranges.
func (c Curve) Bounds() Bounds {
	return Bounds{Time: c.timeRange, Value: c.valueRange}
}

// Segment returns the Bézier form of the i'th segment, between keyframes i
// and i+1. Linear segments are returned as straight Béziers and constant
// segments as flat ones. It returns false if there is no such segment.
func (c Curve) Segment(i int) (Segment, bool) {
	if i < 0 || i >= len(c.keys)-1 {
		return Segment{}, false
	}
	a, b := c.keys[i], c.keys[i+1]
	switch a.Interpolation {
	case CubicInterp:
		return CubicSegment(a, b), true
	case LinearInterp:
		v0, v1 := float64(a.Value), float64(b.Value)
		return Segment{v0, lerp(v0, v1, 1.0/3), lerp(v0, v1, 2.0/3), v1}, true
	case ConstantInterp:
		v := float64(a.Value)
		return Segment{v, v, v, v}, true
	default:
		panic(fmt.Sprintf("unhandled case %v", a.Interpolation))
	}
}

// Eval evaluates the curve at time t in O(log n) time.
func (c Curve) Eval(t float64) float64 {
	switch len(c.keys) {
	case 0:
		return 0
	case 1:
		return float64(c.keys[0].Value)
	}

	var offset float64
	if t < c.timeRange.Min {
		t, offset = c.handlePre(t)
	} else if t > c.timeRange.Max {
		t, offset = c.handlePost(t)
	}

	idx, found := slices.BinarySearchFunc(c.keys, t, func(k Keyframe, t float64) int {
		return cmp.Compare(float64(k.Time), t)
	})
	if found {
		return float64(c.keys[idx].Value) + offset
	}
	// Extrapolation can land just outside of the range due to rounding.
	if idx == 0 {
		return float64(c.keys[0].Value) + offset
	}
	if idx >= len(c.keys) {
		return float64(c.keys[len(c.keys)-1].Value) + offset
	}
	return interpolate(c.keys[idx-1], c.keys[idx], t) + offset
}

// Equal reports whether c and o have the same keyframes and extrapolation
// modes.
func (c Curve) Equal(o Curve) bool {
	return c.pre == o.pre &&
		c.post == o.post &&
		slices.Equal(c.keys, o.keys)
}

// Hash returns a hash of the curve's keyframes and extrapolation modes.
// Curves that are [Curve.Equal] have equal hashes.
func (c Curve) Hash() uint64 {
	h := xxhash.New()
	var buf [4]byte
	put := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	putFloat := func(f float32) {
		if f == 0 {
			// -0 == 0
			f = 0
		}
		put(math.Float32bits(f))
	}
	put(uint32(c.pre))
	put(uint32(c.post))
	put(uint32(len(c.keys)))
	for _, k := range c.keys {
		putFloat(k.Time)
		putFloat(k.Value)
		put(uint32(k.Interpolation))
		putFloat(k.TangentIn)
		putFloat(k.TangentOut)
		put(uint32(k.TangentMode))
	}
	return h.Sum64()
}

// Validate reports whether the curve's keyframes are in strictly ascending
// time order. It returns an error wrapping [ErrUnsorted] or
// [ErrDuplicateTime] otherwise.
func (c Curve) Validate() error {
	return validate(c.keys)
}

func validate(keys []Keyframe) error {
	for i := 1; i < len(keys); i++ {
		switch CompareTime(keys[i-1], keys[i]) {
		case 0:
			return fmt.Errorf("%w: keyframes %d and %d at time %g", ErrDuplicateTime, i-1, i, keys[i].Time)
		case 1:
			return fmt.Errorf("%w: keyframe %d at time %g follows time %g", ErrUnsorted, i, keys[i].Time, keys[i-1].Time)
		}
	}
	return nil
}

func (c Curve) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Curve{pre=%s post=%s [", c.pre, c.post)
	for i, k := range c.keys {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(k.String())
	}
	sb.WriteString("]}")
	return sb.String()
}
