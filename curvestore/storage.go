// Package curvestore stores named curves in files or Redis and caches their
// decoded form.
package curvestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	// ErrNotExists is returned for names without a stored curve.
	ErrNotExists = commerr.ErrNotFound
	ErrBadName   = errors.New("invalid curve name")
)

// Storage holds encoded curves by name. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Load returns the encoded curve stored under name, or ErrNotExists.
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	// Delete removes the curve stored under name, or returns ErrNotExists.
	Delete(ctx context.Context, name string) error
	// List returns the names of all stored curves in ascending order.
	List(ctx context.Context) ([]string, error)
}

// CheckName reports whether name can be used to store a curve. Names consist
// of ASCII letters, digits, '.', '_' and '-', and must not start with a dot.
func CheckName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrBadName)
	}
	if name[0] == '.' {
		return fmt.Errorf("%w: %q starts with a dot", ErrBadName, name)
	}
	for i := 0; i < len(name); i++ {
		switch b := name[i]; {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		case b == '.', b == '_', b == '-':
		default:
			return fmt.Errorf("%w: %q", ErrBadName, name)
		}
	}
	return nil
}
