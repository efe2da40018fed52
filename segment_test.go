package altcurve

import (
	"math"
	"slices"
	"testing"
)

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		c0, c1, c2 float64
		want       []float64
	}{
		{-1, 0, 1, []float64{-1, 1}},
		{6, -5, 1, []float64{2, 3}},
		{1, 0, 1, nil},
		{0, 0, 1, []float64{0}},
		{2, 1, 0, []float64{-2}},
		{1, 0, 0, nil},
		{0, 0, 0, []float64{0}},
	}
	for _, tt := range tests {
		roots, n := SolveQuadratic(tt.c0, tt.c1, tt.c2)
		got := roots[:n]
		if len(got) != len(tt.want) {
			t.Errorf("SolveQuadratic(%v, %v, %v) = %v, want %v", tt.c0, tt.c1, tt.c2, got, tt.want)
			continue
		}
		for i := range got {
			near(t, got[i], tt.want[i], 1e-12)
		}
	}
}

func TestCubicSegment(t *testing.T) {
	a := CubicKey(0, 0, Split, 0, 5)
	b := CubicKey(2, 1, Split, -1, 0)
	s := CubicSegment(a, b)
	diff(t, Segment{0, 4, 1.8, 1}, s, approx)
	near(t, s.Eval(0), 0, 0)
	near(t, s.Eval(1), 1, 0)
}

func TestSegmentSubdivide(t *testing.T) {
	s := Segment{0, 2, -2, 1}
	l, r := s.Subdivide()
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		near(t, l.Eval(tt), s.Eval(tt/2), 1e-12)
		near(t, r.Eval(tt), s.Eval(0.5+tt/2), 1e-12)
	}
}

func TestSegmentExtrema(t *testing.T) {
	s := Segment{0, 2, -2, 0}
	ex, n := s.Extrema()
	if n != 2 {
		t.Fatalf("got %d extrema, want 2", n)
	}
	if ex[0] > ex[1] {
		t.Errorf("extrema %v out of order", ex[:n])
	}
	// Derivative vanishes at the extrema.
	c0, c1, c2 := s.Deriv()
	for _, x := range ex[:n] {
		near(t, c0+c1*x+c2*x*x, 0, 1e-9)
	}

	// Monotonic segments have none.
	if _, n := (Segment{0, 1, 2, 3}).Extrema(); n != 0 {
		t.Errorf("got %d extrema for a straight segment", n)
	}
}

func TestSegmentValueRange(t *testing.T) {
	segs := []Segment{
		{0, 0, 0, 0},
		{0, 1, 2, 3},
		{0, 2, -2, 0},
		{1, 5, 5, 1},
		{-3, 10, -10, 4},
	}
	for _, s := range segs {
		got := s.ValueRange()
		// Fine sampling must stay within the exact range and get close to it.
		var sampled Range
		for i := 0; i <= 1000; i++ {
			v := s.Eval(float64(i) / 1000)
			if i == 0 {
				sampled = Rng(v, v)
			}
			sampled = sampled.UnionValue(v)
		}
		if sampled.Min < got.Min-1e-12 || sampled.Max > got.Max+1e-12 {
			t.Errorf("%v: sampled range %v exceeds exact range %v", s, sampled, got)
		}
		near(t, got.Min, sampled.Min, 1e-4)
		near(t, got.Max, sampled.Max, 1e-4)
	}
}

func TestCurveSegments(t *testing.T) {
	c := New([]Keyframe{
		Key(0, 0, LinearInterp),
		Key(1, 3, ConstantInterp),
		CubicKey(2, 3, Split, 0, 1),
		Key(3, 0, CubicInterp),
	}, Constant, Constant)

	var segs []Segment
	for i := 0; ; i++ {
		s, ok := c.Segment(i)
		if !ok {
			break
		}
		segs = append(segs, s)
	}
	diff(t, []Segment{
		{0, 1, 2, 3},
		{3, 3, 3, 3},
		{3, 3.4, 0, 0},
	}, segs, approx)

	if _, ok := c.Segment(-1); ok {
		t.Error("got segment for index -1")
	}

	// Segments agree with evaluation.
	for i, s := range segs {
		for _, f := range []float64{0, 0.3, 0.5, 0.9} {
			near(t, c.Eval(float64(i)+f), s.Eval(f), 1e-9)
		}
	}
}

func TestSegmentValueRangeSorted(t *testing.T) {
	s := Segment{-3, 10, -10, 4}
	ex, n := s.Extrema()
	if !slices.IsSorted(ex[:n]) {
		t.Errorf("extrema %v not sorted", ex[:n])
	}
	if math.IsNaN(s.ValueRange().Min) {
		t.Error("NaN in value range")
	}
}
