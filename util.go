package configr

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// EnsurePath creates the parent directories of the file path p. It is a no-op
// when they already exist.
func EnsurePath(p string) error {
	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return fmt.Errorf("%w %s: %w", ErrEnsureConfigDir, filepath.Dir(p), err)
	}
	return nil
}

func encode(codec Codec, cfg any) (data []byte, retErr error) {
	// Encoders may panic on kinds they cannot represent (funcs, channels).
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%w as %s: %v", ErrFormat, codec.Name(), r)
		}
	}()

	data, err := codec.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w as %s: %w", ErrFormat, codec.Name(), err)
	}
	return data, nil
}

// createExclusive publishes data at path only when path does not exist yet.
// The content is staged in a temp file and hard-linked into place, so readers
// never observe a partially written config. It reports false, nil when another
// writer got there first.
func createExclusive(path string, data []byte) (created bool, err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml.tmp")
	if err != nil {
		return false, fmt.Errorf("%w %s: create temp file: %w", ErrWrite, path, err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return false, fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return false, fmt.Errorf("%w %s: close temp file: %w", ErrWrite, path, err)
	}

	err = os.Link(tmpFile.Name(), path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrExist):
		return false, nil
	}
	// Filesystems without hard links fall back to O_EXCL.
	return writeExclusive(path, data)
}

func writeExclusive(path string, data []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return false, fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	return true, nil
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	return data, nil
}
