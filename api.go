package lark

// This file is the host-facing surface of spec.md §6: one Go function per
// named operation (`make-structure`, `structure-ref`, ...), each a thin
// wrapper over the C1–C7 machinery in the other files. Operations that
// take an implicit "current structure" in the spec's Lisp-level naming
// take it from the Context explicitly here, since Go has no notion of a
// dynamically-scoped current binding to hang it off of.

// CurrentStructure returns the structure currently being evaluated in.
func (c *Context) CurrentStructure() *Structure { return c.current }

// IsStructure reports whether v is a *Structure (spec.md §6 structurep).
func IsStructure(v Value) bool {
	_, ok := v.(*Structure)
	return ok
}

// StructureRef reads sym's binding in s, or Void if unbound (structure-ref).
func (c *Context) StructureRef(s *Structure, sym *Symbol) Value {
	return s.Ref(sym)
}

// StructureBound reports whether sym has a binding record in s
// (structure-bound?).
func (c *Context) StructureBound(s *Structure, sym *Symbol) bool {
	return s.Bound(sym)
}

// StructureSet assigns v to sym's binding in s (structure-set).
func (c *Context) StructureSet(s *Structure, sym *Symbol, v Value) error {
	if err := s.Set(sym, v); err != nil {
		return err
	}
	c.cache.invalidateSymbol(sym)
	return nil
}

// ExternalStructureRef resolves sym through name, which must be in the
// current structure's accessible or imports list (external-structure-ref).
func (c *Context) ExternalStructureRef(name, sym *Symbol) (Value, error) {
	return c.ExternalRef(c.current, name, sym)
}

// StructureInterface returns s's exported symbols (structure-interface).
func (c *Context) StructureInterface(s *Structure) []*Symbol { return s.Interface() }

// SetInterface replaces s's interface and flushes the cache, since
// changing what's exported can change every transitive lookup result
// (set-interface).
func (c *Context) SetInterface(s *Structure, iface []*Symbol) {
	s.SetInterface(iface)
	c.cache.flush()
}

// StructureExports reports whether sym is part of s's interface
// (structure-exports?).
func (c *Context) StructureExports(s *Structure, sym *Symbol) bool { return s.Exports(sym) }

// StructureImports returns s's import list (structure-imports).
func (c *Context) StructureImports(s *Structure) []*Symbol { return s.Imports() }

// StructureAccessible returns s's accessible list (structure-accessible).
func (c *Context) StructureAccessible(s *Structure) []*Symbol { return s.Accessible() }

// StructureWalk calls fn once per binding in s, stopping early if fn
// returns false (structure-walk fn s).
func (c *Context) StructureWalk(s *Structure, fn func(sym *Symbol, v Value) bool) {
	s.bindings.Walk(func(r *Record) bool {
		return fn(r.symbol, r.binding)
	})
}

// MakeClosureInStructure sets cl's home structure to s and returns it
// (make-closure-in-structure), the same home-mutation discipline
// MakeStructure applies to header/body thunks (spec.md §9 "Closure home
// mutation").
func (c *Context) MakeClosureInStructure(cl Closure, s *Structure) Closure {
	cl.SetHomeStructure(s)
	return cl
}

// Eval runs form in the given structure (or the current one if s is nil)
// via the configured Evaluator collaborator (eval form [structure] [env]).
func (c *Context) Eval(form Value, s *Structure) (Value, error) {
	if s == nil {
		s = c.current
	}
	if c.eval == nil {
		return nil, ErrTypeMismatch
	}
	pop := c.PushStructure(s)
	defer pop()
	return c.eval.Eval(form, s)
}

// MakeBindingImmutable marks sym's binding in s constant, failing with
// ErrVoidValue if no such binding exists (make-binding-immutable).
func (c *Context) MakeBindingImmutable(s *Structure, sym *Symbol) error {
	r := s.bindings.Lookup(sym)
	if r == nil {
		return ErrVoidValue
	}
	r.constant = true
	return nil
}

// BindingImmutable reports whether sym's binding in s is constant
// (binding-immutable? sym [s]).
func (c *Context) BindingImmutable(s *Structure, sym *Symbol) bool {
	r := s.bindings.Lookup(sym)
	return r != nil && r.constant
}

// StructureInstallVM installs s's per-structure bytecode apply-hook
// (structure-install-vm).
func (c *Context) StructureInstallVM(s *Structure, vm ApplyBytecodeFunc) {
	s.InstallVM(vm)
}
