package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for input discovery.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoFiles          = errors.New("no .docx files found")
	ErrInvalidExtension = errors.New("input must have a .docx extension")
)

// isLockFile reports whether name is a word-processor lock file ("~$...").
// Lock files match *.docx but hold no document.
func isLockFile(name string) bool {
	return strings.HasPrefix(name, "~$")
}

func isDocx(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".docx")
}

// discoverFiles finds the .docx files named by inputPath, which may be a
// single file or a directory. Directory scans skip lock files and, unless
// recursive is set, stay at the top level. Both os.ReadDir and
// filepath.WalkDir visit entries in lexical order, so results are stable.
func discoverFiles(inputPath string, recursive bool) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !isDocx(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []string{inputPath}, nil
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isDocx(d.Name()) && !isLockFile(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(inputPath)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !isDocx(e.Name()) || isLockFile(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(inputPath, e.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}
	return files, nil
}
