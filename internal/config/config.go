// Package config loads moonlint.toml (or moonlint.yml) and turns it into
// checker configuration. Rule payloads stay undecoded until the checker knows
// the rule's config type.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"moonlint/internal/checker"
)

// DefaultStd is used when the file does not name a library.
const DefaultStd = "lua51"

// FileNames are probed in order in every directory.
var FileNames = []string{"moonlint.toml", "moonlint.yml", "moonlint.yaml"}

// ErrUnknownKey is wrapped for keys the configuration does not define.
var ErrUnknownKey = errors.New("unknown configuration key")

// File is a parsed configuration file.
type File struct {
	Path    string // empty for the built-in default
	Std     string
	Exclude []string
	Rules   map[string]checker.RuleVariation
	Payload map[string]checker.ConfigValue
}

// Default returns the configuration used when no file is found.
func Default() *File {
	return &File{Std: DefaultStd}
}

// Dir is the directory relative library names and excludes resolve against.
func (f *File) Dir() string {
	if f.Path == "" {
		return "."
	}
	return filepath.Dir(f.Path)
}

// Checker returns the checker part of the file.
func (f *File) Checker() checker.Config {
	return checker.Config{Rules: f.Rules, Payloads: f.Payload}
}

// Fingerprint is a stable rendering of everything that changes lint results,
// used to key the disk cache.
func (f *File) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "std=%s;", f.Std)
	names := make([]string, 0, len(f.Rules))
	for name := range f.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s;", name, f.Rules[name])
	}
	names = names[:0]
	for name := range f.Payload {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if s, ok := f.Payload[name].(fmt.Stringer); ok {
			fmt.Fprintf(&b, "[%s]%s;", name, s.String())
		}
	}
	return b.String()
}

// Find walks up from startDir looking for a configuration file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path, choosing the format by extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		f, err = ParseYAML(data)
	default:
		f, err = ParseTOML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Discover loads the nearest configuration above startDir, or the default.
func Discover(startDir string) (*File, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (f *File) fill() {
	if strings.TrimSpace(f.Std) == "" {
		f.Std = DefaultStd
	}
	if f.Rules == nil {
		f.Rules = make(map[string]checker.RuleVariation)
	}
	if f.Payload == nil {
		f.Payload = make(map[string]checker.ConfigValue)
	}
}
