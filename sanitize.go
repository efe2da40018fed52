package altcurve

import (
	"math"
	"slices"
)

// Sanitize returns a copy of keys that keeps only the first keyframe for
// each distinct time, sorted by ascending time. It is idempotent.
//
// Duplicates are resolved in input order, so the keyframe that appears first
// in keys survives regardless of where sorting moves it.
func Sanitize(keys []Keyframe) []Keyframe {
	out, _ := sanitize(keys, false)
	return out
}

// Report describes the changes made by [SanitizeReport].
type Report struct {
	// Removed lists the keyframes dropped because an earlier keyframe had
	// the same time, in input order.
	Removed []Keyframe
	// Reordered is true if the surviving keyframes had to be sorted.
	Reordered bool
}

// Changed reports whether sanitizing modified the keyframes.
func (r Report) Changed() bool {
	return len(r.Removed) > 0 || r.Reordered
}

// SanitizeReport is like [Sanitize], but also reports what it changed.
func SanitizeReport(keys []Keyframe) ([]Keyframe, Report) {
	return sanitize(keys, true)
}

func sanitize(keys []Keyframe, report bool) ([]Keyframe, Report) {
	var rep Report
	idx, reordered := sanitizeIndices(keys)
	out := make([]Keyframe, len(idx))
	for i, ki := range idx {
		out[i] = keys[ki]
	}
	if report {
		rep.Reordered = reordered
		if len(idx) != len(keys) {
			kept := make([]bool, len(keys))
			for _, ki := range idx {
				kept[ki] = true
			}
			for i, k := range keys {
				if !kept[i] {
					rep.Removed = append(rep.Removed, k)
				}
			}
		}
	}
	return out, rep
}

// sanitizeIndices returns the indices of the keyframes that survive
// sanitizing, in sanitized order, and whether they had to be sorted.
func sanitizeIndices(keys []Keyframe) ([]int, bool) {
	seen := make(map[uint32]struct{}, len(keys))
	idx := make([]int, 0, len(keys))
	for i, k := range keys {
		tk := timeKey(k.Time)
		if _, ok := seen[tk]; ok {
			continue
		}
		seen[tk] = struct{}{}
		idx = append(idx, i)
	}

	byTime := func(a, b int) int { return CompareTime(keys[a], keys[b]) }
	if slices.IsSortedFunc(idx, byTime) {
		return idx, false
	}
	slices.SortStableFunc(idx, byTime)
	return idx, true
}

// timeKey identifies a keyframe time for deduplication. Bit patterns are
// used so that NaN times deduplicate like any other time; -0 and 0 compare
// equal and share a key.
func timeKey(t float32) uint32 {
	if t == 0 {
		t = 0
	}
	return math.Float32bits(t)
}

// Sanitize returns a copy of c with sanitized keyframes. See [Sanitize].
func (c Curve) Sanitize() Curve {
	return c.WithKeyframes(c.SanitizedKeyframes())
}

// SanitizedKeyframes returns the curve's keyframes, sanitized. See [Sanitize].
func (c Curve) SanitizedKeyframes() []Keyframe {
	return Sanitize(c.keys)
}
