package altcurve

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Version is the version of the serialization format written by this
// package. Decoding rejects any other version.
const Version = 1

// The serialized form of a curve. Each field is omitted when it has its
// default value, except for the version and the keyframe coordinates.
type wireCurve struct {
	Version uint           `json:"_ace_v" yaml:"_ace_v"`
	Pre     Extrapolation  `json:"pri,omitempty" yaml:"pri,omitempty"`
	Post    Extrapolation  `json:"poi,omitempty" yaml:"poi,omitempty"`
	Keys    []wireKeyframe `json:"keys,omitempty" yaml:"keys,omitempty"`
}

// wireCurveIn differs from wireCurve in the version, which must be present.
type wireCurveIn struct {
	Version *uint          `json:"_ace_v" yaml:"_ace_v"`
	Pre     Extrapolation  `json:"pri" yaml:"pri"`
	Post    Extrapolation  `json:"poi" yaml:"poi"`
	Keys    []wireKeyframe `json:"keys" yaml:"keys"`
}

type wireKeyframe struct {
	X  float32       `json:"x" yaml:"x"`
	Y  float32       `json:"y" yaml:"y"`
	I  Interpolation `json:"i,omitempty" yaml:"i,omitempty"`
	TI float32       `json:"ti,omitempty" yaml:"ti,omitempty"`
	TO float32       `json:"to,omitempty" yaml:"to,omitempty"`
	TM TangentMode   `json:"tm,omitempty" yaml:"tm,omitempty"`
}

var (
	curveFields    = []string{"_ace_v", "pri", "poi", "keys"}
	keyframeFields = []string{"x", "y", "i", "ti", "to", "tm"}
)

func toWireKeyframe(k Keyframe) wireKeyframe {
	return wireKeyframe{
		X:  k.Time,
		Y:  k.Value,
		I:  k.Interpolation,
		TI: k.TangentIn,
		TO: k.TangentOut,
		TM: k.TangentMode,
	}
}

func (w wireKeyframe) keyframe() Keyframe {
	return Keyframe{
		Time:          w.X,
		Value:         w.Y,
		Interpolation: w.I,
		TangentIn:     w.TI,
		TangentOut:    w.TO,
		TangentMode:   w.TM,
	}
}

func (c Curve) toWire() (wireCurve, error) {
	w := wireCurve{
		Version: Version,
		Pre:     c.pre,
		Post:    c.post,
	}
	for i, k := range c.keys {
		if !k.Interpolation.Valid() || !k.TangentMode.Valid() {
			return wireCurve{}, fmt.Errorf("keyframe %d: %w", i, ErrUnknownEnum)
		}
		w.Keys = append(w.Keys, toWireKeyframe(k))
	}
	return w, nil
}

func (w wireCurveIn) curve(format string) (Curve, error) {
	if w.Version == nil {
		return Curve{}, &DecodeError{Format: format, Field: "_ace_v", Err: fmt.Errorf("%w: missing", ErrVersion)}
	}
	if *w.Version != Version {
		return Curve{}, &DecodeError{
			Format: format,
			Field:  "_ace_v",
			Err:    fmt.Errorf("%w: %d, want %d", ErrVersion, *w.Version, Version),
		}
	}
	// UnmarshalText guarantees valid enums; these checks only matter for
	// decoders that bypass it.
	if !w.Pre.Valid() || !w.Post.Valid() {
		return Curve{}, &DecodeError{Format: format, Err: ErrUnknownEnum}
	}
	keys := make([]Keyframe, len(w.Keys))
	for i, wk := range w.Keys {
		if !wk.I.Valid() || !wk.TM.Valid() {
			return Curve{}, &DecodeError{Format: format, Field: fmt.Sprintf("keys[%d]", i), Err: ErrUnknownEnum}
		}
		keys[i] = wk.keyframe()
	}
	return New(keys, w.Pre, w.Post), nil
}

// MarshalJSON implements [json.Marshaler].
func (c Curve) MarshalJSON() ([]byte, error) {
	w, err := c.toWire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements [json.Unmarshaler]. Decoding fails on unknown
// properties, unknown enum names and versions other than [Version]. On
// failure, c is left unchanged.
//
// The decoded keyframes are not sanitized.
func (c *Curve) UnmarshalJSON(data []byte) error {
	nc, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*c = nc
	return nil
}

// EncodeJSON returns the JSON encoding of c.
func EncodeJSON(c Curve) ([]byte, error) {
	return c.MarshalJSON()
}

// DecodeJSON decodes a curve from its JSON encoding. Errors are of type
// [*DecodeError].
func DecodeJSON(data []byte) (Curve, error) {
	obj, err := checkJSONFields(data, curveFields, "")
	if err != nil {
		return Curve{}, err
	}
	if raw, ok := obj["keys"]; ok {
		var keys []json.RawMessage
		if json.Unmarshal(raw, &keys) == nil {
			for i, k := range keys {
				if _, err := checkJSONFields(k, keyframeFields, fmt.Sprintf("keys[%d].", i)); err != nil {
					return Curve{}, err
				}
			}
		}
	}

	var w wireCurveIn
	if err := decodeStrictJSON(data, &w); err != nil {
		return Curve{}, err
	}
	return w.curve("json")
}

// MarshalJSON implements [json.Marshaler].
func (k Keyframe) MarshalJSON() ([]byte, error) {
	if !k.Interpolation.Valid() || !k.TangentMode.Valid() {
		return nil, ErrUnknownEnum
	}
	return json.Marshal(toWireKeyframe(k))
}

// UnmarshalJSON implements [json.Unmarshaler].
func (k *Keyframe) UnmarshalJSON(data []byte) error {
	if _, err := checkJSONFields(data, keyframeFields, ""); err != nil {
		return err
	}
	var w wireKeyframe
	if err := decodeStrictJSON(data, &w); err != nil {
		return err
	}
	*k = w.keyframe()
	return nil
}

// checkJSONFields rejects properties of the object in data whose names
// aren't exactly one of allowed. encoding/json matches field names without
// regard to case, so DisallowUnknownFields alone accepts "PRI" for "pri".
// Data that isn't an object is left for the struct decode to report.
func checkJSONFields(data []byte, allowed []string, prefix string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if json.Unmarshal(data, &obj) != nil {
		return nil, nil
	}
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		if !slices.Contains(allowed, key) {
			return nil, &DecodeError{Format: "json", Field: prefix + key, Err: ErrUnknownField}
		}
	}
	return obj, nil
}

func decodeStrictJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return jsonDecodeError(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return &DecodeError{Format: "json", Err: errors.New("trailing data after value")}
	}
	return nil
}

func jsonDecodeError(err error) error {
	de := &DecodeError{Format: "json", Err: err}
	// encoding/json doesn't export an error type for unknown fields.
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		if s, uerr := strconv.Unquote(name); uerr == nil {
			name = s
		}
		de.Field = name
		de.Err = ErrUnknownField
		return de
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		de.Field = typeErr.Field
	}
	return de
}
