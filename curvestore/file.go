package curvestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// NewFileStorage returns a storage keeping each curve in its own file in
// the directory root, named after the curve plus the format's extension.
// The directory is created on the first save.
func NewFileStorage(root string, format Format) *FileStorage {
	return &FileStorage{
		root:   root,
		format: format,
	}
}

// FileStorage is a [Storage] backed by a directory.
type FileStorage struct {
	root   string
	format Format
}

func (stg *FileStorage) Format() Format { return stg.format }

func (stg *FileStorage) fileNameByName(name string) string {
	return filepath.Join(stg.root, name+stg.format.Ext())
}

func (stg *FileStorage) Load(_ context.Context, name string) ([]byte, error) {
	d, err := os.ReadFile(stg.fileNameByName(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExists
	}
	return d, err
}

func (stg *FileStorage) Save(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(stg.root, 0700); err != nil {
		return err
	}

	// Readers never observe a partially written file.
	tmp, err := os.CreateTemp(stg.root, "."+name+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), stg.fileNameByName(name)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (stg *FileStorage) Delete(_ context.Context, name string) error {
	err := os.Remove(stg.fileNameByName(name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotExists
	}
	return err
}

func (stg *FileStorage) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(stg.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ext := stg.format.Ext()
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), ext)
		if !ok || CheckName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
