package lark

// GetStructure reads the registry's binding table for name, returning the
// named Structure or nil if no structure is currently registered under it
// (spec.md §4.3 get_structure).
func (c *Context) GetStructure(name *Symbol) *Structure {
	v := c.registry.Ref(name)
	if IsVoid(v) {
		return nil
	}
	s, _ := v.(*Structure)
	return s
}

// NameStructure implements spec.md §4.3's name_structure, preserving its
// asymmetric behavior on purpose (spec.md §9 "Open question"): clearing a
// structure's registry entry (name == nil) does NOT clear s.Name, while
// naming a previously-anonymous structure DOES set s.Name. This is
// preserved rather than "fixed" per spec.md's instruction; see
// registry_test.go's TestNameStructureAsymmetry and DESIGN.md.
func (c *Context) NameStructure(s *Structure, name *Symbol) {
	defer c.cache.flush() // renames change what transitive imports resolve to.

	if name == nil {
		if s.name != nil {
			c.registry.removeLocalBinding(s.name)
		}
		return
	}

	c.registry.define(name, s)
	if s.name == nil {
		s.name = name
	}
}

// removeLocalBinding voids the registry's binding for sym, the
// name-registry-specific counterpart of spec.md §3's "Assigning
// void-equivalent removes the entry." The record itself is left in place
// (spec.md's Non-goals exclude removing bindings outright) but its value
// becomes Void, so GetStructure treats it as absent.
func (s *Structure) removeLocalBinding(sym *Symbol) {
	if r := s.bindings.Lookup(sym); r != nil {
		r.binding = Void
	}
}
