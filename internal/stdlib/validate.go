package stdlib

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrVarargPosition = errors.New("vararg must be the last argument")
	ErrUnknownStruct  = errors.New("unknown struct")
	ErrStructCycle    = errors.New("struct inheritance cycle")
)

// Validate checks model integrity: varargs only in last position, struct
// references that exist, and acyclic "*" inheritance.
func (s *StandardLibrary) Validate() error {
	var errs []error
	visit := func(path string, f *Field) {
		switch f.Kind {
		case FieldFunction:
			for i, arg := range f.Arguments {
				if arg.Type.Kind == TypeVararg && i != len(f.Arguments)-1 {
					errs = append(errs, fmt.Errorf("%s: argument %d: %w", path, i+1, ErrVarargPosition))
				}
			}
		case FieldStruct:
			if _, ok := s.Struct(f.Struct); !ok {
				errs = append(errs, fmt.Errorf("%s: %w %q", path, ErrUnknownStruct, f.Struct))
			}
		}
	}

	walkMembers("", s.Globals, visit)
	if s.Meta != nil {
		for _, name := range sortedKeys(s.Meta.Structs) {
			walkMembers(name, s.Meta.Structs[name], visit)
			if err := s.checkInheritance(name); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (s *StandardLibrary) checkInheritance(start string) error {
	visited := map[string]bool{}
	name := start
	for {
		if visited[name] {
			return fmt.Errorf("struct %s: %w through %q", start, ErrStructCycle, name)
		}
		visited[name] = true
		members, ok := s.Struct(name)
		if !ok {
			return nil
		}
		parent, ok := members[InheritKey]
		if !ok || parent.Kind != FieldStruct {
			return nil
		}
		name = parent.Struct
	}
}

func walkMembers(prefix string, members map[string]*Field, visit func(string, *Field)) {
	for _, key := range sortedKeys(members) {
		f := members[key]
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		visit(path, f)
		if f.Kind == FieldTable {
			walkMembers(path, f.Table, visit)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
