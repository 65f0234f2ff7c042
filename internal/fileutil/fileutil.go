// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DirPerm is the mode used for every directory this tool creates.
const DirPerm = 0o755

// writeProbeName is the throwaway file used to test directory writability.
const writeProbeName = ".write_test"

// ErrNoWritableDir indicates that none of the candidate output roots could
// be created and written to.
var ErrNoWritableDir = errors.New("no writable directory among candidates")

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsURL returns true if the string looks like an HTTP or HTTPS URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// ProbeWritableDir returns the first candidate directory that can be created
// and written to. Each candidate is probed by creating it, writing a
// throwaway file inside, and removing the file again; candidates that fail
// any step are skipped. Sandboxed installs make this necessary: the
// directory next to the executable is often read-only.
func ProbeWritableDir(candidates []string) (string, error) {
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, DirPerm); err != nil {
			continue
		}
		probe := filepath.Join(dir, writeProbeName)
		if err := os.WriteFile(probe, []byte("test"), 0o600); err != nil {
			continue
		}
		_ = os.Remove(probe)
		return dir, nil
	}
	return "", ErrNoWritableDir
}

// MoveFile moves src to dst, falling back to copy-and-delete when rename
// fails (e.g. across filesystems).
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("removing %s after copy: %w", src, err)
	}
	return nil
}

// CopyFile copies src to dst, truncating dst if it exists.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
