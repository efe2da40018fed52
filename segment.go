package altcurve

import (
	"fmt"
	"math"
)

// TangentScale converts a keyframe's rise-over-run tangent into the offset of
// its Bézier control point, relative to the duration of the segment.
const TangentScale = 0.4

// Segment is a one-dimensional cubic Bézier describing the values of a curve
// segment over t ∈ [0, 1].
type Segment struct {
	P0, P1, P2, P3 float64
}

// CubicSegment returns the Bézier form of the cubic segment between keyframes
// a and b, ignoring their interpolation modes.
func CubicSegment(a, b Keyframe) Segment {
	dt := float64(b.Time) - float64(a.Time)
	return Segment{
		P0: float64(a.Value),
		P1: float64(a.Value) + float64(a.TangentOut)*dt*TangentScale,
		P2: float64(b.Value) - float64(b.TangentIn)*dt*TangentScale,
		P3: float64(b.Value),
	}
}

// Eval evaluates the segment at t using de Casteljau's algorithm.
func (s Segment) Eval(t float64) float64 {
	a := lerp(s.P0, s.P1, t)
	b := lerp(s.P1, s.P2, t)
	c := lerp(s.P2, s.P3, t)

	d := lerp(a, b, t)
	e := lerp(b, c, t)

	return lerp(d, e, t)
}

// Subdivide subdivides the segment into halves, using de Casteljau.
func (s Segment) Subdivide() (Segment, Segment) {
	pm := s.Eval(0.5)
	return Segment{
			s.P0,
			0.5 * (s.P0 + s.P1),
			0.25 * (s.P0 + 2*s.P1 + s.P2),
			pm,
		},
		Segment{
			pm,
			0.25 * (s.P1 + 2*s.P2 + s.P3),
			0.5 * (s.P2 + s.P3),
			s.P3,
		}
}

// Deriv returns the coefficients of the segment's derivative, such that
// B'(t) = c0 + c1 t + c2 t².
func (s Segment) Deriv() (c0, c1, c2 float64) {
	d0 := s.P1 - s.P0
	d1 := s.P2 - s.P1
	d2 := s.P3 - s.P2
	return 3 * d0, 6 * (d1 - d0), 3 * (d0 - 2*d1 + d2)
}

// Extrema returns the parameters of the segment's interior extrema, in
// increasing order.
func (s Segment) Extrema() ([2]float64, int) {
	var out [2]float64
	var outN int
	c0, c1, c2 := s.Deriv()
	roots, n := SolveQuadratic(c0, c1, c2)
	for _, t := range roots[:n] {
		if t > 0 && t < 1 {
			out[outN] = t
			outN++
		}
	}
	if outN == 2 && out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out, outN
}

// ValueRange returns the exact range of values the segment takes on over
// [0, 1].
func (s Segment) ValueRange() Range {
	r := Rng(min(s.P0, s.P3), max(s.P0, s.P3))
	ex, n := s.Extrema()
	for _, t := range ex[:n] {
		r = r.UnionValue(s.Eval(t))
	}
	return r
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// interpolate computes the value between keyframes a and b at time t, where
// a.Time ≤ t ≤ b.Time.
func interpolate(a, b Keyframe, t float64) float64 {
	switch a.Interpolation {
	case ConstantInterp:
		return float64(a.Value)
	case LinearInterp:
		frac := (t - float64(a.Time)) / (float64(b.Time) - float64(a.Time))
		return lerp(float64(a.Value), float64(b.Value), frac)
	case CubicInterp:
		frac := (t - float64(a.Time)) / (float64(b.Time) - float64(a.Time))
		return CubicSegment(a, b).Eval(frac)
	default:
		panic(fmt.Sprintf("unhandled case %v", a.Interpolation))
	}
}

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// If the equation is nearly linear, the root of the linear equation is
// returned. In the degenerate case where all coefficients are zero, a single
// 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) && !math.IsNaN(root) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, other
		// root as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}
