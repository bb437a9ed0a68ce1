package lark

// localLookup consults s's own binding table (spec.md §4.4 local_lookup).
func (c *Context) localLookup(s *Structure, sym *Symbol) *Record {
	return s.bindings.Lookup(sym)
}

// importLookup performs the transitive lookup of spec.md §4.4
// import_lookup: probe the cache, then walk s.imports in order via
// recursiveLookup, entering the first hit into the cache.
func (c *Context) importLookup(s *Structure, sym *Symbol) *Record {
	if r := c.cache.get(s, sym); r != nil {
		return r
	}
	for _, name := range s.imports {
		if r := c.recursiveLookup(name, sym); r != nil {
			c.cache.enter(s, sym, r)
			return r
		}
	}
	return nil
}

// recursiveLookup implements spec.md §4.4's recursive_lookup: resolve name
// through the registry, honor local shadowing of imported exports, and
// guard re-entry of the same structure with its EXCLUSION flag.
func (c *Context) recursiveLookup(name *Symbol, sym *Symbol) *Record {
	target := c.GetStructure(name)
	if target == nil {
		return nil
	}

	if n := target.bindings.Lookup(sym); n != nil {
		if n.exported {
			return n
		}
		// Local non-exported binding shadows any deeper export.
		return nil
	}

	if !target.exportsInherited(sym) {
		return nil
	}

	rec, entered := target.withExclusion(func() *Record {
		return c.importLookup(target, sym)
	})
	if !entered {
		return nil
	}
	return rec
}

// Resolve is the free-variable resolution path the evaluator collaborator
// drives (spec.md §2's control-flow summary): local binding first, then
// the cached transitive import walk.
func (c *Context) Resolve(s *Structure, sym *Symbol) *Record {
	if r := c.localLookup(s, sym); r != nil {
		return r
	}
	return c.importLookup(s, sym)
}

func containsSymbol(list []*Symbol, sym *Symbol) bool {
	for _, n := range list {
		if n == sym {
			return true
		}
	}
	return false
}

// ExternalRef implements spec.md §4.4's external_ref: name must be in
// current's accessible or imports list, then recursiveLookup resolves it.
// A miss, or a binding whose value is Void, fails with ErrVoidValue.
func (c *Context) ExternalRef(current *Structure, name *Symbol, sym *Symbol) (Value, error) {
	if !containsSymbol(current.accessible, name) && !containsSymbol(current.imports, name) {
		return nil, ErrVoidValue
	}
	rec := c.recursiveLookup(name, sym)
	if rec == nil || IsVoid(rec.binding) {
		return nil, ErrVoidValue
	}
	return rec.binding, nil
}
