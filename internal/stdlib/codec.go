package stdlib

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrMalformed wraps every document shape error.
var ErrMalformed = errors.New("malformed standard library")

// Parse decodes a document in the given format.
func Parse(data []byte, format Format) (*StandardLibrary, error) {
	switch format {
	case FormatTOML:
		return ParseTOML(data)
	case FormatYAML:
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unknown standard library format %q", format)
	}
}

func ParseTOML(data []byte) (*StandardLibrary, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return fromDoc(doc)
}

func ParseYAML(data []byte) (*StandardLibrary, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return fromDoc(doc)
}

// Marshal encodes the library in the given format.
func (s *StandardLibrary) Marshal(format Format) ([]byte, error) {
	doc := s.toDoc()
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.Indent = ""
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown standard library format %q", format)
	}
}

// ===== document -> model =====

func malformed(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, path, fmt.Sprintf(format, args...))
}

func fromDoc(doc map[string]any) (*StandardLibrary, error) {
	s := &StandardLibrary{Globals: map[string]*Field{}}
	for key := range doc {
		if key != "meta" && key != "globals" {
			return nil, malformed(key, "unknown top-level key")
		}
	}

	if raw, ok := doc["meta"]; ok {
		meta, err := metaFromDoc(raw)
		if err != nil {
			return nil, err
		}
		s.Meta = meta
	}

	if raw, ok := doc["globals"]; ok {
		globals, err := membersFromDoc("globals", raw)
		if err != nil {
			return nil, err
		}
		s.Globals = globals
	}
	return s, nil
}

func metaFromDoc(raw any) (*Meta, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed("meta", "expected a table")
	}
	meta := &Meta{Structs: map[string]map[string]*Field{}}
	for key, v := range m {
		switch key {
		case "name", "base":
			str, ok := v.(string)
			if !ok {
				return nil, malformed("meta."+key, "expected a string")
			}
			if key == "name" {
				meta.Name = str
			} else {
				meta.Base = str
			}
		case "structs":
			structs, ok := v.(map[string]any)
			if !ok {
				return nil, malformed("meta.structs", "expected a table")
			}
			for name, members := range structs {
				fields, err := membersFromDoc("meta.structs."+name, members)
				if err != nil {
					return nil, err
				}
				meta.Structs[name] = fields
			}
		default:
			return nil, malformed("meta."+key, "unknown key")
		}
	}
	return meta, nil
}

func membersFromDoc(path string, raw any) (map[string]*Field, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed(path, "expected a table")
	}
	out := make(map[string]*Field, len(m))
	for key, v := range m {
		f, err := fieldFromDoc(path+"."+key, v)
		if err != nil {
			return nil, err
		}
		out[key] = f
	}
	return out, nil
}

func fieldFromDoc(path string, raw any) (*Field, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed(path, "expected a table")
	}

	if rawArgs, ok := m["args"]; ok {
		list, ok := asList(rawArgs)
		if !ok {
			return nil, malformed(path+".args", "expected an array")
		}
		f := &Field{Kind: FieldFunction, Arguments: make([]Argument, 0, len(list))}
		for i, item := range list {
			arg, err := argumentFromDoc(fmt.Sprintf("%s.args[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			f.Arguments = append(f.Arguments, arg)
		}
		if method, ok := m["method"]; ok {
			b, ok := method.(bool)
			if !ok {
				return nil, malformed(path+".method", "expected a boolean")
			}
			f.Method = b
		}
		return f, nil
	}

	if prop, ok := m["property"]; ok {
		if b, ok := prop.(bool); !ok || !b {
			return nil, malformed(path+".property", "expected true")
		}
		f := &Field{Kind: FieldProperty}
		if w, ok := m["writable"]; ok {
			str, _ := w.(string)
			writable, ok := parseWritable(str)
			if !ok {
				return nil, malformed(path+".writable", "expected overridden, new-fields or full")
			}
			f.Writable = writable
		}
		return f, nil
	}

	if ref, ok := m["struct"]; ok {
		name, ok := ref.(string)
		if !ok {
			return nil, malformed(path+".struct", "expected a string")
		}
		return StructRef(name), nil
	}

	members, err := membersFromDoc(path, m)
	if err != nil {
		return nil, err
	}
	return Table(members), nil
}

func argumentFromDoc(path string, raw any) (Argument, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Argument{}, malformed(path, "expected a table")
	}
	arg := Argument{Required: RequiredWith("")}

	switch t := m["type"].(type) {
	case string:
		prim, ok := primitiveType(t)
		if !ok {
			return Argument{}, malformed(path+".type", "unknown type %q", t)
		}
		arg.Type = prim
	case map[string]any:
		display, ok := t["display"].(string)
		if !ok {
			return Argument{}, malformed(path+".type", "expected {display = \"Name\"}")
		}
		arg.Type = Display(display)
	default:
		list, ok := asList(t)
		if !ok {
			return Argument{}, malformed(path+".type", "expected a type name, an array of constants or a display table")
		}
		values := make([]string, 0, len(list))
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return Argument{}, malformed(path+".type", "constants must be strings")
			}
			values = append(values, str)
		}
		arg.Type = Constant(values...)
	}

	if req, ok := m["required"]; ok {
		switch r := req.(type) {
		case bool:
			if r {
				return Argument{}, malformed(path+".required", "expected false or a message")
			}
			arg.Required = NotRequired
		case string:
			arg.Required = RequiredWith(r)
		default:
			return Argument{}, malformed(path+".required", "expected false or a message")
		}
	}
	return arg, nil
}

// asList принимает и []any, и []map[string]any (toml так декодирует [[array]]).
func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []map[string]any:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func parseWritable(s string) (Writable, bool) {
	for w, name := range writableNames {
		if name == s && w != ReadOnly {
			return w, true
		}
	}
	return ReadOnly, false
}

// ===== model -> document =====

func (s *StandardLibrary) toDoc() map[string]any {
	doc := map[string]any{"globals": membersToDoc(s.Globals)}
	if s.Meta != nil {
		meta := map[string]any{}
		if s.Meta.Name != "" {
			meta["name"] = s.Meta.Name
		}
		if s.Meta.Base != "" {
			meta["base"] = s.Meta.Base
		}
		if len(s.Meta.Structs) > 0 {
			structs := map[string]any{}
			for name, members := range s.Meta.Structs {
				structs[name] = membersToDoc(members)
			}
			meta["structs"] = structs
		}
		doc["meta"] = meta
	}
	return doc
}

func membersToDoc(members map[string]*Field) map[string]any {
	out := make(map[string]any, len(members))
	for key, f := range members {
		out[key] = fieldToDoc(f)
	}
	return out
}

func fieldToDoc(f *Field) map[string]any {
	switch f.Kind {
	case FieldFunction:
		args := make([]any, 0, len(f.Arguments))
		for _, arg := range f.Arguments {
			args = append(args, argumentToDoc(arg))
		}
		out := map[string]any{"args": args}
		if f.Method {
			out["method"] = true
		}
		return out
	case FieldProperty:
		out := map[string]any{"property": true}
		if f.Writable != ReadOnly {
			out["writable"] = f.Writable.String()
		}
		return out
	case FieldStruct:
		return map[string]any{"struct": f.Struct}
	default:
		return membersToDoc(f.Table)
	}
}

func argumentToDoc(arg Argument) map[string]any {
	out := map[string]any{}
	switch arg.Type.Kind {
	case TypeConstant:
		values := make([]any, len(arg.Type.Constants))
		for i, c := range arg.Type.Constants {
			values[i] = c
		}
		out["type"] = values
	case TypeDisplay:
		out["type"] = map[string]any{"display": arg.Type.Display}
	default:
		out["type"] = arg.Type.String()
	}
	switch {
	case !arg.Required.Required:
		out["required"] = false
	case arg.Required.Message != "":
		out["required"] = arg.Required.Message
	}
	return out
}
