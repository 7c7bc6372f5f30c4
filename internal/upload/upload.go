// Package upload stages client file uploads on local disk with sanitized
// names and guaranteed cleanup.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StagedFile is an upload written to local disk.
type StagedFile struct {
	// Path is the on-disk location of the staged file.
	Path string
	// Filename is the sanitized client-provided name.
	Filename string
}

// Stage writes the upload to dir under a unique name and returns the staged
// file. The caller must Remove it when done.
func Stage(dir, filename string, r io.Reader) (*StagedFile, error) {
	name := SanitizeFilename(filename)

	f, err := os.CreateTemp(dir, "upload_*_"+name)
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("write staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("close staging file: %w", err)
	}

	return &StagedFile{Path: f.Name(), Filename: name}, nil
}

// Remove deletes the staged file. Safe to call more than once.
func (s *StagedFile) Remove() error {
	if s == nil || s.Path == "" {
		return nil
	}
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SanitizeFilename strips path components and control characters from a
// client-provided filename. Falls back to a generated name when nothing
// usable remains.
func SanitizeFilename(filename string) string {
	// Base on both separator conventions; clients send whatever their OS uses.
	name := filename
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = filepath.Base(name)

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			// drop control characters
		case r == '/' || r == '\\' || r == ':' || r == '*':
			sb.WriteRune('_')
		default:
			sb.WriteRune(r)
		}
	}
	name = sb.String()

	name = strings.Trim(name, ". ")
	if name == "" || name == ".." {
		return uuid.NewString() + ".bin"
	}
	return name
}
