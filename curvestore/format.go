package curvestore

import (
	"fmt"
	"path/filepath"
	"strings"

	"honnef.co/go/altcurve"
)

// Format is the encoding of stored curves.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the file extension of the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	default:
		panic(fmt.Sprintf("unhandled case %v", f))
	}
}

func (f Format) Encode(c altcurve.Curve) ([]byte, error) {
	switch f {
	case JSON:
		return altcurve.EncodeJSON(c)
	case YAML:
		return altcurve.EncodeYAML(c)
	default:
		panic(fmt.Sprintf("unhandled case %v", f))
	}
}

func (f Format) Decode(data []byte) (altcurve.Curve, error) {
	switch f {
	case JSON:
		return altcurve.DecodeJSON(data)
	case YAML:
		return altcurve.DecodeYAML(data)
	default:
		panic(fmt.Sprintf("unhandled case %v", f))
	}
}

// FormatOf returns the format implied by the extension of path. Both .yaml
// and .yml are recognized as YAML.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	default:
		return 0, false
	}
}
