package stdlib

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*
var builtinFS embed.FS

// ErrNotFound is returned when no file or builtin matches a library name.
var ErrNotFound = errors.New("standard library not found")

// ErrBaseCycle is returned when meta.base chains loop.
var ErrBaseCycle = errors.New("standard library base cycle")

// Loader resolves library names. User files in Dir shadow the builtins.
type Loader struct {
	Dir string
}

var extensions = []struct {
	ext    string
	format Format
}{
	{".toml", FormatTOML},
	{".yml", FormatYAML},
	{".yaml", FormatYAML},
}

// Builtins lists the embedded library names.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		names = append(names, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	sort.Strings(names)
	return names
}

// Load returns a fully inflated library. "a+b" loads both and merges them
// left to right: entries of b win over a.
func (l Loader) Load(name string) (*StandardLibrary, error) {
	var result *StandardLibrary
	for _, part := range strings.Split(name, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty name in %q", ErrNotFound, name)
		}
		lib, err := l.LoadRaw(part)
		if err != nil {
			return nil, err
		}
		if err := lib.Inflate(l); err != nil {
			return nil, fmt.Errorf("std %s: %w", part, err)
		}
		if result != nil {
			lib.Extend(result)
		}
		result = lib
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("std %s: %w", name, err)
	}
	return result, nil
}

// LoadRaw reads one library without resolving its base.
func (l Loader) LoadRaw(name string) (*StandardLibrary, error) {
	if l.Dir != "" {
		for _, e := range extensions {
			path := filepath.Join(l.Dir, name+e.ext)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			lib, err := Parse(data, e.format)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return lib, nil
		}
	}
	for _, e := range extensions {
		data, err := builtinFS.ReadFile("builtin/" + name + e.ext)
		if err != nil {
			continue
		}
		lib, err := Parse(data, e.format)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", name, err)
		}
		return lib, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Inflate follows meta.base through l and merges every ancestor into s.
// Afterwards Meta.Base is empty, so inflating twice is a no-op.
func (s *StandardLibrary) Inflate(l Loader) error {
	seen := map[string]bool{s.Name(): true}
	for s.Meta != nil && s.Meta.Base != "" {
		baseName := s.Meta.Base
		if seen[baseName] {
			return fmt.Errorf("%w: %q", ErrBaseCycle, baseName)
		}
		seen[baseName] = true

		base, err := l.LoadRaw(baseName)
		if err != nil {
			return fmt.Errorf("base %s: %w", baseName, err)
		}
		s.Meta.Base = ""
		s.Extend(base)
		if base.Meta != nil {
			s.Meta.Base = base.Meta.Base
		}
	}
	return nil
}
