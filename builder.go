package lark

const metaStructureName = "%meta"

// ensureMeta lazily builds the bootstrap meta-structure make_structure's
// header thunk is transiently given access to (spec.md §4.6 step 3): a
// structure exporting native "open" and "access" bindings that operate on
// whatever structure is current at the time they're called. It is built,
// and registered under its name, the first time it is needed.
func (c *Context) ensureMeta() *Structure {
	if c.meta != nil {
		return c.meta
	}
	m := newStructure(nil)
	m.SetExportsAll(true)
	openSym := c.interner.Intern("open")
	accessSym := c.interner.Intern("access")
	m.DefineNative(openSym, Value(func(names []*Symbol) error {
		return c.OpenStructures(names)
	}))
	m.DefineNative(accessSym, Value(func(names []*Symbol) error {
		return c.AccessStructures(names)
	}))
	c.meta = m
	c.metaName = c.interner.Intern(metaStructureName)
	c.NameStructure(m, c.metaName)
	return m
}

// discard removes a partially-built structure from the live list and, if
// it was registered, from the registry — spec.md §4.6 step 5's "the
// partially-built structure is discarded (unrooted)".
func (c *Context) discard(s *Structure, wasRegistered *Symbol) {
	for i, live := range c.live {
		if live == s {
			c.live = append(c.live[:i], c.live[i+1:]...)
			break
		}
	}
	if wasRegistered != nil {
		c.registry.removeLocalBinding(wasRegistered)
	}
}

// MakeStructure implements spec.md §4.6's make: allocate, register,
// optionally run a header thunk (with transient access to "open"/"access"
// via the meta-structure import) and a body thunk, in the new structure's
// own environment. An error from either thunk discards the structure and
// propagates.
func (c *Context) MakeStructure(iface []*Symbol, header, body Thunk, name *Symbol) (*Structure, error) {
	s := newStructure(c.current.applyBytecode)
	if len(iface) > 0 {
		s.interface_ = append([]*Symbol(nil), iface...)
	}
	c.track(s)

	var registeredAs *Symbol
	if name != nil {
		c.NameStructure(s, name)
		registeredAs = name
	}

	armThunk := func(t Thunk) {
		if cl, ok := t.(Closure); ok {
			cl.SetHomeStructure(s)
		}
	}

	if header != nil {
		c.ensureMeta()
		s.imports = append([]*Symbol{c.metaName}, s.imports...)
		armThunk(header)

		pop := c.PushStructure(s)
		_, err := c.callThunk(header)
		pop()

		s.imports = removeSymbol(s.imports, c.metaName)

		if err != nil {
			c.discard(s, registeredAs)
			return nil, err
		}
	}

	if body != nil {
		armThunk(body)
		pop := c.PushStructure(s)
		_, err := c.callThunk(body)
		pop()
		if err != nil {
			c.discard(s, registeredAs)
			return nil, err
		}
	}

	return s, nil
}

// callThunk runs t through the configured Evaluator if one is set, or
// calls it directly — make-structure's thunks are plain zero-argument
// callables (spec.md §3 "thunks = zero-arg callables") and do not require
// a bytecode VM to invoke.
func (c *Context) callThunk(t Thunk) (Value, error) {
	if c.eval != nil {
		return c.eval.Call0(t)
	}
	return t.Call()
}

func removeSymbol(list []*Symbol, sym *Symbol) []*Symbol {
	out := list[:0:0]
	for _, n := range list {
		if n != sym {
			out = append(out, n)
		}
	}
	return out
}

// OpenStructures implements spec.md §4.6's open_structures: for each name
// not already imported by the current structure, intern-or-load it, then
// prepend to current.imports (literally, in the order given, so a later
// name ends up ahead of an earlier one and wins ties). Flushes the cache
// once at the end.
func (c *Context) OpenStructures(names []*Symbol) error {
	cur := c.current
	for _, name := range names {
		if containsSymbol(cur.imports, name) {
			continue
		}
		if _, err := c.InternStructure(name); err != nil {
			return err
		}
		cur.imports = append([]*Symbol{name}, cur.imports...)
	}
	c.cache.flush()
	return nil
}

// AccessStructures is open_structures's analogue targeting
// current.accessible (spec.md §4.6 access_structures).
func (c *Context) AccessStructures(names []*Symbol) error {
	cur := c.current
	for _, name := range names {
		if containsSymbol(cur.accessible, name) {
			continue
		}
		if _, err := c.InternStructure(name); err != nil {
			return err
		}
		cur.accessible = append([]*Symbol{name}, cur.accessible...)
	}
	c.cache.flush()
	return nil
}
