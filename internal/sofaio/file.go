package sofaio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sofar/internal/sofa"
)

// Ext is appended to file names without extension.
const Ext = ".sofa.yaml"

// WithExt returns path with Ext appended if it has no extension.
func WithExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + Ext
	}

	return path
}

// ReadFile reads a container from disk.
func ReadFile(path string, opts ReadOptions) (*sofa.Object, error) {
	path = WithExt(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	o, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return o, nil
}

// WriteFile writes o to disk. The file is removed if writing fails.
func WriteFile(path string, o *sofa.Object) (err error) {
	path = WithExt(path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := Write(f, o); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
