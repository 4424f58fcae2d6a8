package fileutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Exists reports whether path exists at all.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates path (and parents) if missing.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteTextAtomic writes content to path through a temp file and rename, so
// readers never observe a truncated artifact. The parent directory must
// exist.
func WriteTextAtomic(path, content string) error {
	return atomic.WriteFile(path, strings.NewReader(content))
}

// ReadText reads path as a string.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListTexFiles returns the .tex files directly inside dir, sorted by name.
// A missing directory yields an empty list.
func ListTexFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && filepath.Ext(entry.Name()) == ".tex" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
