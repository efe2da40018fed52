// Package altcurve provides keyframed animation curves: functions of one
// variable, usually time, defined by a sequence of keyframes and cheap to
// evaluate. They are suited for animation, procedural parameters and tuning
// curves in user interfaces.
//
// # Keyframes
//
// A [Keyframe] is a control point with a time and a value. Its
// [Interpolation] determines how values between it and the following
// keyframe are computed: [CubicInterp] segments are one-dimensional cubic
// Béziers shaped by the keyframes' tangents, [LinearInterp] segments are
// straight lines, and [ConstantInterp] segments hold the keyframe's value,
// producing steps.
//
// Tangents are slopes, expressed as rise over run. A keyframe's
// [TangentMode] does not affect evaluation. It decides whether
// [RecalcAutoTangents] may overwrite the tangents ([Automatic]) and how the
// tangent editing helpers [Keyframe.WithTangentIn] and
// [Keyframe.WithTangentOut] behave ([Mirrored] and [Split]).
//
// # Curves
//
// A [Curve] is an immutable value holding keyframes in ascending time order,
// plus an [Extrapolation] mode for either side of the keyframes' time range.
// Curves are created with [New] and never modified; methods such as
// [Curve.WithKeyframes] return new curves. Curves can thus be shared freely
// between goroutines.
//
// [Curve.Eval] evaluates a curve in O(log n) time using binary search. Times
// outside of the time range are mapped back into it by the extrapolation
// mode: [Constant] holds the outermost values, [Linear] continues the
// outermost slopes, [Cycle] repeats the curve, [CycleOffset] repeats it
// while accumulating the difference between the last and first values, and
// [Oscillate] repeats it back and forth. The cycling modes require a
// non-zero [Curve.TimeSpan].
//
// Construction also caches the curve's time range and value range, overall
// and per segment. Value ranges of cubic segments are found by sampling and
// are therefore approximate. Where exact extents matter, use
// [Curve.Segment] and [Segment.ValueRange].
//
// # Sanitizing
//
// Keyframes of a valid curve have distinct times in ascending order. [New]
// doesn't enforce this, as fixing up keyframes silently would hide bugs;
// instead, [Sanitize] removes keyframes sharing a time with an earlier
// keyframe and sorts the rest. For editors that need to hold invalid
// keyframes while the user is working on them, [Draft] maintains raw
// keyframes and builds sanitized curves from them.
//
// # Serialization
//
// Curves implement [json.Marshaler] and [json.Unmarshaler], as well as the
// YAML equivalents of [gopkg.in/yaml.v3]. The format is versioned (see
// [Version]) and compact: properties with default values are omitted. A
// curve encoded as JSON looks like this:
//
//	{"_ace_v":1,"pri":"Cycle","keys":[{"x":0,"y":0,"i":"Linear"},{"x":1,"y":10}]}
//
// Decoding is strict and reports errors of type [*DecodeError].
package altcurve
