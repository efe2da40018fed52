package altcurve

import (
	"errors"
	"math"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   []Keyframe
		want []Keyframe
	}{
		{
			"empty",
			nil,
			[]Keyframe{},
		},
		{
			"sorted",
			[]Keyframe{Key(0, 1, LinearInterp), Key(1, 2, LinearInterp)},
			[]Keyframe{Key(0, 1, LinearInterp), Key(1, 2, LinearInterp)},
		},
		{
			"reversed",
			[]Keyframe{Key(2, 3, LinearInterp), Key(1, 2, LinearInterp), Key(0, 1, LinearInterp)},
			[]Keyframe{Key(0, 1, LinearInterp), Key(1, 2, LinearInterp), Key(2, 3, LinearInterp)},
		},
		{
			"first wins",
			[]Keyframe{Key(1, 10, LinearInterp), Key(0, 0, LinearInterp), Key(1, 20, ConstantInterp)},
			[]Keyframe{Key(0, 0, LinearInterp), Key(1, 10, LinearInterp)},
		},
		{
			"first wins after sorting",
			[]Keyframe{Key(5, 1, LinearInterp), Key(2, 2, LinearInterp), Key(5, 3, LinearInterp), Key(2, 4, LinearInterp)},
			[]Keyframe{Key(2, 2, LinearInterp), Key(5, 1, LinearInterp)},
		},
		{
			"negative zero",
			[]Keyframe{Key(0, 1, LinearInterp), Key(float32(math.Copysign(0, -1)), 2, LinearInterp)},
			[]Keyframe{Key(0, 1, LinearInterp)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			diff(t, tt.want, got)
			if err := validate(got); err != nil {
				t.Errorf("sanitized keyframes are invalid: %s", err)
			}
			diff(t, got, Sanitize(got))
		})
	}
}

func TestSanitizeDoesNotModifyInput(t *testing.T) {
	in := []Keyframe{Key(2, 0, LinearInterp), Key(1, 0, LinearInterp), Key(2, 1, LinearInterp)}
	orig := append([]Keyframe(nil), in...)
	Sanitize(in)
	diff(t, orig, in)
}

func TestSanitizeReport(t *testing.T) {
	in := []Keyframe{Key(1, 10, LinearInterp), Key(0, 0, LinearInterp), Key(1, 20, ConstantInterp), Key(0, 5, CubicInterp)}
	out, rep := SanitizeReport(in)
	diff(t, []Keyframe{Key(0, 0, LinearInterp), Key(1, 10, LinearInterp)}, out)
	diff(t, Report{
		Removed:   []Keyframe{Key(1, 20, ConstantInterp), Key(0, 5, CubicInterp)},
		Reordered: true,
	}, rep)
	if !rep.Changed() {
		t.Error("report claims no change")
	}

	_, rep = SanitizeReport([]Keyframe{Key(0, 0, LinearInterp), Key(1, 1, LinearInterp)})
	if rep.Changed() {
		t.Errorf("unexpected changes %+v", rep)
	}

	_, rep = SanitizeReport([]Keyframe{Key(0, 0, LinearInterp), Key(1, 1, LinearInterp), Key(1, 2, LinearInterp)})
	diff(t, Report{Removed: []Keyframe{Key(1, 2, LinearInterp)}}, rep)
}

func TestCurveSanitize(t *testing.T) {
	c := New([]Keyframe{Key(3, 0, LinearInterp), Key(1, 1, LinearInterp), Key(3, 2, LinearInterp)}, Cycle, Linear)
	if !errors.Is(c.Validate(), ErrUnsorted) {
		t.Errorf("got %v, want %v", c.Validate(), ErrUnsorted)
	}
	s := c.Sanitize()
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	diff(t, New([]Keyframe{Key(1, 1, LinearInterp), Key(3, 0, LinearInterp)}, Cycle, Linear), s)
	diff(t, s.Keyframes(), c.SanitizedKeyframes())
}

func TestValidate(t *testing.T) {
	if err := New(nil, Constant, Constant).Validate(); err != nil {
		t.Error(err)
	}
	dup := New([]Keyframe{Key(0, 0, LinearInterp), Key(0, 1, LinearInterp)}, Constant, Constant)
	if err := dup.Validate(); !errors.Is(err, ErrDuplicateTime) {
		t.Errorf("got %v, want %v", err, ErrDuplicateTime)
	}
}
