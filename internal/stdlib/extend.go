package stdlib

// Extend merges base into s. Every key already present in s wins over the
// same key in base; tables and structs present on both sides merge
// recursively. s's metadata takes precedence.
func (s *StandardLibrary) Extend(base *StandardLibrary) {
	if base == nil {
		return
	}
	if s.Globals == nil {
		s.Globals = map[string]*Field{}
	}
	mergeMembers(s.Globals, base.Globals)

	if base.Meta == nil {
		return
	}
	if s.Meta == nil {
		s.Meta = &Meta{}
	}
	if s.Meta.Name == "" {
		s.Meta.Name = base.Meta.Name
	}
	if s.Meta.Structs == nil {
		s.Meta.Structs = map[string]map[string]*Field{}
	}
	for name, members := range base.Meta.Structs {
		own, ok := s.Meta.Structs[name]
		if !ok {
			s.Meta.Structs[name] = cloneMembers(members)
			continue
		}
		mergeMembers(own, members)
	}
}

func mergeMembers(dst, base map[string]*Field) {
	for key, bf := range base {
		cf, ok := dst[key]
		if !ok {
			dst[key] = bf.Clone()
			continue
		}
		if cf.Kind == FieldTable && bf.Kind == FieldTable {
			if cf.Table == nil {
				cf.Table = map[string]*Field{}
			}
			mergeMembers(cf.Table, bf.Table)
		}
	}
}

// Clone returns a deep copy of the library.
func (s *StandardLibrary) Clone() *StandardLibrary {
	out := &StandardLibrary{Globals: cloneMembers(s.Globals)}
	if s.Meta != nil {
		out.Meta = &Meta{Name: s.Meta.Name, Base: s.Meta.Base, Structs: map[string]map[string]*Field{}}
		for name, members := range s.Meta.Structs {
			out.Meta.Structs[name] = cloneMembers(members)
		}
	}
	return out
}
