package altcurve

import (
	"slices"
)

// RecalcAutoTangents returns a copy of keys in which the tangents of all
// cubic keyframes with [Automatic] tangent mode have been recomputed, along
// with the indices of those keyframes in ascending order.
//
// The tangent of an interior keyframe is the slope between its neighbors.
// The first and last keyframes get flat tangents so that the curve cycles
// seamlessly. keys should already be sanitized; see [Sanitize].
func RecalcAutoTangents(keys []Keyframe) ([]Keyframe, []int) {
	out := slices.Clone(keys)
	var changed []int
	for i, k := range out {
		if k.Interpolation != CubicInterp || k.TangentMode != Automatic {
			continue
		}
		var slope float32
		if i != 0 && i != len(out)-1 {
			prev, next := out[i-1], out[i+1]
			slope = (next.Value - prev.Value) / (next.Time - prev.Time)
		}
		out[i].TangentIn = slope
		out[i].TangentOut = slope
		changed = append(changed, i)
	}
	return out, changed
}

// WithAutoTangents returns a copy of c with automatic tangents recalculated.
// See [RecalcAutoTangents].
func (c Curve) WithAutoTangents() Curve {
	keys, _ := RecalcAutoTangents(c.keys)
	return c.WithKeyframes(keys)
}
