package ir

func (s *Service) index() {
	s.once.Do(func() {
		s.types = make(map[string]*Type, len(s.Types))
		s.enums = make(map[string]*Enum, len(s.Enums))
		s.unions = make(map[string]*Union, len(s.Unions))
		for _, t := range s.Types {
			if _, ok := s.types[t.Name]; !ok {
				s.types[t.Name] = t
			}
		}
		for _, e := range s.Enums {
			if _, ok := s.enums[e.Name]; !ok {
				s.enums[e.Name] = e
			}
		}
		for _, u := range s.Unions {
			if _, ok := s.unions[u.Name]; !ok {
				s.unions[u.Name] = u
			}
		}
	})
}

// Type resolves a type by name.
func (s *Service) Type(name string) *Type {
	s.index()
	return s.types[name]
}

// Enum resolves an enum by name.
func (s *Service) Enum(name string) *Enum {
	s.index()
	return s.enums[name]
}

// Union resolves a union by name.
func (s *Service) Union(name string) *Union {
	s.index()
	return s.unions[name]
}

// Classify reports what a type name resolves to.
// Primitives win over definitions with the same name.
func (s *Service) Classify(name string) RefKind {
	if _, ok := ParsePrimitive(name); ok {
		return RefPrimitive
	}
	switch {
	case s.Type(name) != nil:
		return RefType
	case s.Enum(name) != nil:
		return RefEnum
	case s.Union(name) != nil:
		return RefUnion
	default:
		return RefUnknown
	}
}

// UnionMembers resolves the member types of u in declaration order.
// Names that do not resolve to a type are skipped.
func (s *Service) UnionMembers(u *Union) []*Type {
	out := make([]*Type, 0, len(u.Members))
	for _, name := range u.Members {
		if t := s.Type(name); t != nil {
			out = append(out, t)
		}
	}
	return out
}
