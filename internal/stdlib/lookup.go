package stdlib

import "fmt"

// InheritKey is the struct member whose Struct value names the parent struct.
const InheritKey = "*"

// FindGlobal resolves a dotted name path such as ["math", "ceil"]. Table
// fields descend into their members, Struct fields into the named struct
// (following "*" inheritance). Any other kind with segments remaining, or a
// missing segment, is a miss.
func (s *StandardLibrary) FindGlobal(path []string) (*Field, bool) {
	if s == nil || len(path) == 0 {
		return nil, false
	}
	cur, ok := s.Globals[path[0]]
	if !ok {
		return nil, false
	}
	for _, seg := range path[1:] {
		switch cur.Kind {
		case FieldTable:
			cur, ok = cur.Table[seg]
		case FieldStruct:
			cur, ok = s.StructMember(cur.Struct, seg)
		default:
			return nil, false
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// StructMember looks a member up on a struct and its "*" ancestors.
// An inheritance cycle is a broken library and panics; Validate reports it
// as an error before a library is used.
func (s *StandardLibrary) StructMember(structName, member string) (*Field, bool) {
	visited := map[string]bool{}
	name := structName
	for {
		if visited[name] {
			panic(fmt.Sprintf("stdlib: struct inheritance cycle through %q", name))
		}
		visited[name] = true

		members, ok := s.Struct(name)
		if !ok {
			return nil, false
		}
		if f, ok := members[member]; ok && member != InheritKey {
			return f, true
		}
		parent, ok := members[InheritKey]
		if !ok || parent.Kind != FieldStruct {
			return nil, false
		}
		name = parent.Struct
	}
}
