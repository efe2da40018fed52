package altcurve

import (
	"fmt"
	"iter"
)

// Sample is a curve value at a point in time.
type Sample struct {
	Time  float64
	Value float64
}

func (s Sample) String() string {
	return fmt.Sprintf("(%g, %g)", s.Time, s.Value)
}

// Samples returns an iterator over n evenly spaced samples of the curve,
// from r.Min to r.Max inclusive. The range may extend past the curve's
// keyframes, in which case the samples are extrapolated. If n < 2, a single
// sample at r.Min is produced.
func (c Curve) Samples(r Range, n int) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		if n < 2 {
			yield(Sample{r.Min, c.Eval(r.Min)})
			return
		}
		for i := range n {
			var t float64
			if i == n-1 {
				// Avoid rounding error at the end of the range.
				t = r.Max
			} else {
				t = r.Lerp(float64(i) / float64(n-1))
			}
			if !yield(Sample{t, c.Eval(t)}) {
				return
			}
		}
	}
}

// Sampled returns n samples covering the curve's time range. See
// [Curve.Samples].
func (c Curve) Sampled(n int) []Sample {
	out := make([]Sample, 0, max(n, 1))
	for s := range c.Samples(c.timeRange, n) {
		out = append(out, s)
	}
	return out
}
