package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"moonlint/internal/checker"
)

type tomlDocument struct {
	Std     string                           `toml:"std"`
	Exclude []string                         `toml:"exclude"`
	Rules   map[string]checker.RuleVariation `toml:"rules"`
	Config  map[string]toml.Primitive        `toml:"config"`
}

// ParseTOML reads a moonlint.toml document.
func ParseTOML(data []byte) (*File, error) {
	var doc tomlDocument
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	for _, key := range meta.Undecoded() {
		// полезная нагрузка правил декодируется позже
		if len(key) > 1 && key[0] == "config" {
			continue
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	var raw struct {
		Config map[string]any `toml:"config"`
	}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	f := &File{Std: doc.Std, Exclude: doc.Exclude, Rules: doc.Rules}
	f.fill()
	for name, prim := range doc.Config {
		f.Payload[name] = &TOMLValue{meta: &meta, prim: prim, key: toml.Key{"config", name}, raw: raw.Config[name]}
	}
	return f, nil
}

// TOMLValue is a `[config.<rule>]` table decoded on demand.
type TOMLValue struct {
	meta *toml.MetaData
	prim toml.Primitive
	key  toml.Key
	raw  any
}

// Decode fills v and rejects keys v does not declare.
func (v *TOMLValue) Decode(out any) error {
	if err := v.meta.PrimitiveDecode(v.prim, out); err != nil {
		return err
	}
	for _, key := range v.meta.Undecoded() {
		if hasPrefix(key, v.key) {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	return nil
}

// String renders the payload for fingerprints.
func (v *TOMLValue) String() string {
	return fmt.Sprint(v.raw)
}

func hasPrefix(key, prefix toml.Key) bool {
	if len(key) <= len(prefix) {
		return false
	}
	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}
	return true
}
