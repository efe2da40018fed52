package altcurve

import (
	"slices"
)

// Draft is a mutable working copy of a curve's keyframes, for editing.
//
// Unlike a [Curve], a draft may temporarily hold keyframes that are out of
// order or share times, for example while a keyframe is being dragged past
// another one. [Draft.Build] turns the draft into a valid curve.
//
// A Draft must not be used concurrently.
type Draft struct {
	raw  []Keyframe
	pre  Extrapolation
	post Extrapolation
}

// NewDraft returns a draft holding c's keyframes and extrapolation modes.
func NewDraft(c Curve) *Draft {
	return &Draft{
		raw:  c.Keyframes(),
		pre:  c.pre,
		post: c.post,
	}
}

// Len returns the number of raw keyframes.
func (d *Draft) Len() int { return len(d.raw) }

// At returns the i'th raw keyframe.
func (d *Draft) At(i int) Keyframe { return d.raw[i] }

// Raw returns a copy of the raw keyframes, in editing order.
func (d *Draft) Raw() []Keyframe { return slices.Clone(d.raw) }

// Set replaces the i'th raw keyframe.
func (d *Draft) Set(i int, k Keyframe) { d.raw[i] = k }

// Insert appends a keyframe and returns its index.
func (d *Draft) Insert(k Keyframe) int {
	d.raw = append(d.raw, k)
	return len(d.raw) - 1
}

// Remove deletes the i'th raw keyframe.
func (d *Draft) Remove(i int) {
	d.raw = slices.Delete(d.raw, i, i+1)
}

func (d *Draft) Extrapolation() (pre, post Extrapolation) { return d.pre, d.post }

func (d *Draft) SetExtrapolation(pre, post Extrapolation) {
	d.pre = pre
	d.post = post
}

// Shadowed reports whether an earlier raw keyframe has the same time as the
// i'th one, in which case the i'th keyframe will be dropped by [Draft.Build].
func (d *Draft) Shadowed(i int) bool {
	tk := timeKey(d.raw[i].Time)
	for _, k := range d.raw[:i] {
		if timeKey(k.Time) == tk {
			return true
		}
	}
	return false
}

// Build sanitizes the raw keyframes, recalculates automatic tangents and
// returns the resulting curve.
//
// Recalculated tangents are written back to the raw keyframes they came
// from, so that the draft's automatic tangents stay in sync with the curve.
// Tangents are never computed from the unsanitized keyframes, as their
// neighbors may be wrong.
func (d *Draft) Build() Curve {
	toRaw, _ := sanitizeIndices(d.raw)
	sanitized := make([]Keyframe, len(toRaw))
	for si, ri := range toRaw {
		sanitized[si] = d.raw[ri]
	}

	keys, changed := RecalcAutoTangents(sanitized)
	for _, si := range changed {
		d.raw[toRaw[si]] = keys[si]
	}
	return New(keys, d.pre, d.post)
}
