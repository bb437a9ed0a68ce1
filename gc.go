package lark

// MarkFunc is the collector's trace callback: visiting a value marks it
// (and, transitively, whatever it reaches) reachable. The engine never
// interprets what visit does with a Value beyond calling it once per
// reachable slot.
type MarkFunc func(v Value)

// Mark traces s's own fields for the collector (spec.md §4.8 / §6's
// published "mark" hook): name, interface, imports, accessible,
// special_env, and every record's symbol and binding. This is the
// engine's contribution to an embedding host's tracing collector, not a
// second garbage collector — Go's own GC already reclaims Go memory; this
// hook exists so a host language built on this engine can trace through
// it when it has its own heap objects living inside Values.
func (c *Context) Mark(s *Structure, visit MarkFunc) {
	if s.name != nil {
		visit(s.name)
	}
	for _, sym := range s.interface_ {
		visit(sym)
	}
	for _, sym := range s.imports {
		visit(sym)
	}
	for _, sym := range s.accessible {
		visit(sym)
	}
	if s.specialEnv != nil {
		visit(s.specialEnv)
	}
	s.bindings.Walk(func(r *Record) bool {
		visit(r.symbol)
		visit(r.binding)
		return true
	})
}

// Roots returns the engine's root set (spec.md §4.8): the current
// structure, the default structure, the specials structure, and the name
// registry. A host's collector marks from these in addition to its own
// roots.
func (c *Context) Roots() []*Structure {
	return []*Structure{c.current, c.def, c.specials, c.registry}
}

// Live returns the engine-wide list of all structures sweep walks,
// snapshotted at call time.
func (c *Context) Live() []*Structure {
	out := make([]*Structure, len(c.live))
	copy(out, c.live)
	return out
}

// Sweep walks the live-structure list, per spec.md §4.8's "sweeps dead
// structures": every structure for which reachable returns false is
// dropped from the live list and has any cache slot referencing it
// invalidated. Returns the structures that were freed.
func (c *Context) Sweep(reachable func(*Structure) bool) []*Structure {
	kept := c.live[:0:0]
	var freed []*Structure
	for _, s := range c.live {
		if reachable(s) {
			kept = append(kept, s)
			continue
		}
		c.cache.invalidateStructure(s)
		freed = append(freed, s)
	}
	c.live = kept
	return freed
}
