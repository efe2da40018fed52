package altcurve

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func near(t *testing.T, got, want, epsilon float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("got %v, want %v (±%v)", got, want, epsilon)
	}
}

// extrapolationKeys is a cubic curve spanning [0, 3] used by the
// extrapolation tests.
func extrapolationKeys() []Keyframe {
	return []Keyframe{
		CubicKey(0, 0, Mirrored, 0, 0),
		CubicKey(1, 2, Mirrored, 1, 1),
		CubicKey(2, -1, Mirrored, -1, -1),
		CubicKey(3, 3, Mirrored, 2, 2),
	}
}
