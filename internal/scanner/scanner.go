// Package scanner finds recorded "go test -json" report files.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fjglira/tcbridge/internal/domain"
)

// Scanner discovers report files under a directory.
type Scanner interface {
	Scan(rootDir string) ([]string, error)
}

// ReportScanner implements Scanner using filepath.WalkDir.
type ReportScanner struct {
	Include   []string
	Exclude   []string
	Recursive bool
}

// NewScanner creates a ReportScanner.
func NewScanner(include, exclude []string, recursive bool) *ReportScanner {
	return &ReportScanner{Include: include, Exclude: exclude, Recursive: recursive}
}

// Scan returns the sorted paths under rootDir matching any include pattern and
// no exclude pattern. A rootDir naming a file is returned as is.
func (s *ReportScanner) Scan(rootDir string) ([]string, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("scan", "", "failed to stat "+rootDir,
			"check input.directories in tcbridge.yaml", err)
	}
	if !info.IsDir() {
		return []string{rootDir}, nil
	}

	var files []string
	err = filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if !s.Recursive || s.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.excluded(rel) && s.included(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewError("scan", "", "failed to scan "+rootDir, err)
	}

	sort.Strings(files)
	return files, nil
}

func (s *ReportScanner) included(rel string) bool {
	for _, p := range s.Include {
		if matchGlob(rel, p) {
			return true
		}
	}
	return false
}

func (s *ReportScanner) excluded(rel string) bool {
	for _, p := range s.Exclude {
		if matchGlob(rel, p) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against a glob pattern.
// "**" matches any number of directories.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	if before, after, ok := strings.Cut(pattern, "**"); ok {
		prefix := strings.TrimSuffix(before, "/")
		suffix := strings.TrimPrefix(after, "/")
		if prefix != "" {
			if path != prefix && !strings.HasPrefix(path, prefix+"/") {
				return false
			}
			path = strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
		}
		if suffix == "" {
			return true
		}
		parts := strings.Split(path, "/")
		for i := range parts {
			if ok, _ := filepath.Match(suffix, strings.Join(parts[i:], "/")); ok {
				return true
			}
		}
		return false
	}

	if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
		return true
	}
	ok, _ := filepath.Match(pattern, path)
	return ok
}
