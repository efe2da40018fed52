package altcurve

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements [yaml.Marshaler]. The YAML form uses the same
// property names and defaults as the JSON form.
func (c Curve) MarshalYAML() (any, error) {
	return c.toWire()
}

// UnmarshalYAML implements [yaml.Unmarshaler]. It is as strict as
// [Curve.UnmarshalJSON].
func (c *Curve) UnmarshalYAML(node *yaml.Node) error {
	nc, err := decodeYAMLNode(node)
	if err != nil {
		return err
	}
	*c = nc
	return nil
}

// EncodeYAML returns the YAML encoding of c.
func EncodeYAML(c Curve) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeYAML decodes a curve from a YAML document. Errors are of type
// [*DecodeError].
func DecodeYAML(data []byte) (Curve, error) {
	var node yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&node); err != nil {
		if err == io.EOF {
			err = errors.New("empty document")
		}
		return Curve{}, &DecodeError{Format: "yaml", Err: err}
	}
	return decodeYAMLNode(&node)
}

func decodeYAMLNode(node *yaml.Node) (Curve, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return Curve{}, &DecodeError{Format: "yaml", Err: fmt.Errorf("expected mapping, got %s", nodeKind(node))}
	}
	if err := checkYAMLFields(node, curveFields, ""); err != nil {
		return Curve{}, err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "keys" || node.Content[i+1].Kind != yaml.SequenceNode {
			continue
		}
		for j, kn := range node.Content[i+1].Content {
			if kn.Kind != yaml.MappingNode {
				continue
			}
			if err := checkYAMLFields(kn, keyframeFields, fmt.Sprintf("keys[%d].", j)); err != nil {
				return Curve{}, err
			}
		}
	}

	var w wireCurveIn
	if err := node.Decode(&w); err != nil {
		return Curve{}, &DecodeError{Format: "yaml", Err: err}
	}
	return w.curve("yaml")
}

func checkYAMLFields(node *yaml.Node, allowed []string, prefix string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !slices.Contains(allowed, key) {
			return &DecodeError{Format: "yaml", Field: prefix + key, Err: ErrUnknownField}
		}
	}
	return nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", node.Kind)
	}
}
