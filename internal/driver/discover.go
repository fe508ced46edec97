package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern selects the files linted inside directory arguments.
const DefaultPattern = "**/*.lua"

// Discovery describes which files a check covers.
type Discovery struct {
	Pattern string   // matched against paths relative to each directory argument
	Exclude []string // matched against paths relative to Base
	Base    string   // usually the directory of moonlint.toml
}

// Discover expands paths into a sorted, duplicate-free file list. Files named
// explicitly are kept even when the pattern would not select them.
func (d Discovery) Discover(paths []string) ([]string, error) {
	pattern := d.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	for _, p := range append([]string{pattern}, d.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] && !d.excluded(clean) {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if p != root && d.excluded(p) {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			if doublestar.MatchUnvalidated(pattern, filepath.ToSlash(rel)) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (d Discovery) excluded(p string) bool {
	if len(d.Exclude) == 0 {
		return false
	}
	rel := p
	if d.Base != "" {
		if r, err := filepath.Rel(d.Base, p); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range d.Exclude {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}
