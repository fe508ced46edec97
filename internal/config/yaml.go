package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"moonlint/internal/checker"
)

type yamlDocument struct {
	Std     string                           `yaml:"std"`
	Exclude []string                         `yaml:"exclude"`
	Rules   map[string]checker.RuleVariation `yaml:"rules"`
	Config  map[string]yaml.Node             `yaml:"config"`
}

// ParseYAML reads a moonlint.yml document.
func ParseYAML(data []byte) (*File, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	f := &File{Std: doc.Std, Exclude: doc.Exclude, Rules: doc.Rules}
	f.fill()
	for name, node := range doc.Config {
		f.Payload[name] = &YAMLValue{node: node}
	}
	return f, nil
}

// YAMLValue is a `config.<rule>` mapping decoded on demand.
type YAMLValue struct {
	node yaml.Node
}

// Decode fills out and rejects fields it does not declare.
func (v *YAMLValue) Decode(out any) error {
	raw, err := yaml.Marshal(&v.node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func (v *YAMLValue) String() string {
	raw, err := yaml.Marshal(&v.node)
	if err != nil {
		return ""
	}
	return string(raw)
}
