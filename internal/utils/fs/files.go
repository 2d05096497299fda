package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func IsValidFile(filename string) bool {
	fileInfo, err := os.Stat(filepath.FromSlash(filename))
	return err == nil && fileInfo.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fileInfo, err := os.Stat(filepath.FromSlash(path))
	return err == nil && fileInfo.IsDir()
}

// Probe returns the first dir/name+ext that is an existing, openable regular
// file, trying dirs in order.
func Probe(dirs []string, name, ext string) (string, bool) {
	for _, dir := range dirs {
		candidate := filepath.ToSlash(filepath.Join(dir, name+ext))
		if !IsValidFile(candidate) {
			continue
		}
		f, err := os.Open(filepath.FromSlash(candidate))
		if err != nil {
			continue
		}
		f.Close()
		return candidate, true
	}
	return "", false
}

// ListModules returns the names of the files with extension ext directly
// inside dirs, without the extension. A name found in several dirs is listed
// once, in the order first seen.
func ListModules(dirs []string, ext string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(filepath.FromSlash(dir))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != ext {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ext)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}
