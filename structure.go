package lark

// Structure is a first-class named environment: the engine's unit of
// modularity (spec.md §3). Its binding table is its own; imports and
// accessibles are ordered lists of structure-name symbols resolved through
// the registry at lookup time, not eagerly materialized.
type Structure struct {
	name *Symbol // nil means anonymous

	// interface_ lists symbols exported by virtue of inheritance from an
	// explicit set-interface call, not yet backed by a local binding.
	// A symbol is never in both interface_ and the binding table as an
	// exported local record at once (spec.md §3 invariant).
	interface_ []*Symbol

	imports    []*Symbol
	accessible []*Symbol

	bindings Table

	exportAll bool
	exclusion bool

	specialEnv any

	applyBytecode ApplyBytecodeFunc
}

// ApplyBytecodeFunc is the per-structure bytecode apply-hook the VM
// collaborator installs (spec.md §4.2 install_vm, §4.8 apply_bytecode).
type ApplyBytecodeFunc func(fn Value, args []Value) (Value, error)

// newStructure allocates a bare structure with the given inherited
// apply-bytecode hook. It is not registered under any name and has empty
// imports/accessible/interface, per §4.6 step 1.
func newStructure(inheritedVM ApplyBytecodeFunc) *Structure {
	return &Structure{applyBytecode: inheritedVM}
}

// Name returns the structure's name symbol, or nil if anonymous.
func (s *Structure) Name() *Symbol { return s.name }

// removeFromInterface deletes sym from the inherited interface list if
// present, reporting whether it was there. Called by Table.LookupOrAdd
// when a local binding is created for a symbol previously only inherited
// (spec.md §4.1, "if the symbol currently sits in the parent structure's
// interface list...").
func (s *Structure) removeFromInterface(sym *Symbol) bool {
	for i, n := range s.interface_ {
		if n == sym {
			s.interface_ = append(s.interface_[:i], s.interface_[i+1:]...)
			return true
		}
	}
	return false
}

// Ref returns the binding for sym, or Void if none exists (spec.md §4.2
// ref).
func (s *Structure) Ref(sym *Symbol) Value {
	if r := s.bindings.Lookup(sym); r != nil {
		return r.binding
	}
	return Void
}

// Bound reports whether sym has a local binding record (regardless of its
// value being Void).
func (s *Structure) Bound(sym *Symbol) bool {
	return s.bindings.Lookup(sym) != nil
}

// Set assigns v to sym's binding, creating the record if necessary. It
// fails with ErrSettingConstant if the existing record has been made
// immutable (spec.md §4.2 set).
func (s *Structure) Set(sym *Symbol, v Value) error {
	r := s.bindings.Lookup(sym)
	if r == nil {
		r = s.bindings.LookupOrAdd(sym, s.exportAll, s)
	}
	if r.constant {
		return ErrSettingConstant
	}
	r.binding = v
	return nil
}

// define creates (or reuses) the binding for sym and sets its value,
// bypassing the constant check — used internally by the builder and by
// native-function registration, never exposed as a host operation in its
// own right.
func (s *Structure) define(sym *Symbol, v Value) *Record {
	r := s.bindings.LookupOrAdd(sym, s.exportAll, s)
	r.binding = v
	return r
}

// DefineNative installs a natively implemented binding (the Go-level
// analogue of structures.c's rep_add_subr), exported per the structure's
// current EXPORT_ALL setting.
func (s *Structure) DefineNative(sym *Symbol, fn Value) {
	s.define(sym, fn)
}

// Exports reports whether sym is part of s's interface: either locally
// bound and marked exported, or inherited and listed in interface_.
func (s *Structure) Exports(sym *Symbol) bool {
	if r := s.bindings.Lookup(sym); r != nil {
		return r.exported
	}
	for _, n := range s.interface_ {
		if n == sym {
			return true
		}
	}
	return false
}

// exportsInherited reports whether sym would be re-exported transitively
// through s without being locally bound — spec.md §4.4's
// exports_inherited?(target, sym): EXPORT_ALL or membership in interface_.
func (s *Structure) exportsInherited(sym *Symbol) bool {
	if s.exportAll {
		return true
	}
	for _, n := range s.interface_ {
		if n == sym {
			return true
		}
	}
	return false
}

// Interface returns the exported symbols of s: local exported bindings
// plus inherited interface_ entries (spec.md §4.2 interface(s)).
func (s *Structure) Interface() []*Symbol {
	var out []*Symbol
	s.bindings.Walk(func(r *Record) bool {
		if r.exported {
			out = append(out, r.symbol)
		}
		return true
	})
	out = append(out, s.interface_...)
	return out
}

// SetInterface replaces s's inherited interface list with iface, clears
// EXPORT_ALL, and updates the exported flag of every local record to
// match membership in iface (spec.md §4.2 set_interface, §8 invariant 6).
// Callers are responsible for flushing the lookup cache (§4.5).
func (s *Structure) SetInterface(iface []*Symbol) {
	want := make(map[*Symbol]bool, len(iface))
	var inherited []*Symbol
	for _, sym := range iface {
		if s.bindings.Lookup(sym) == nil {
			inherited = append(inherited, sym)
		}
		want[sym] = true
	}
	s.bindings.Walk(func(r *Record) bool {
		r.exported = want[r.symbol]
		return true
	})
	s.interface_ = inherited
	s.exportAll = false
}

// SetExportsAll sets or clears the EXPORT_ALL flag directly, independent
// of SetInterface — structures.c's %structure-exports-all (SPEC_FULL §12).
func (s *Structure) SetExportsAll(v bool) { s.exportAll = v }

// ExportsAll reports the current EXPORT_ALL flag.
func (s *Structure) ExportsAll() bool { return s.exportAll }

// Imports returns s's ordered import list.
func (s *Structure) Imports() []*Symbol {
	out := make([]*Symbol, len(s.imports))
	copy(out, s.imports)
	return out
}

// Accessible returns s's ordered accessible list.
func (s *Structure) Accessible() []*Symbol {
	out := make([]*Symbol, len(s.accessible))
	copy(out, s.accessible)
	return out
}

// InstallVM installs fn as s's per-structure bytecode apply-hook (spec.md
// §4.2 install_vm). Passing nil clears the hook; the hook inherited at
// creation is not restored.
func (s *Structure) InstallVM(fn ApplyBytecodeFunc) {
	s.applyBytecode = fn
}

// ApplyBytecode returns s's current apply-hook, which is nil if none was
// inherited or installed, or if nil was installed last.
func (s *Structure) ApplyBytecode() ApplyBytecodeFunc { return s.applyBytecode }

// withExclusion runs f with s.exclusion set, guaranteeing it is cleared on
// every exit path including panics — the scoped-acquisition pattern
// spec.md §9 and §5 prescribe for the EXCLUSION cycle guard. Returns
// false immediately, without calling f, if s is already excluded.
func (s *Structure) withExclusion(f func() *Record) (rec *Record, entered bool) {
	if s.exclusion {
		return nil, false
	}
	s.exclusion = true
	defer func() { s.exclusion = false }()
	return f(), true
}

// Stats reports binding-table occupancy, the debug counterpart to
// structures.c's %structure-stats (SPEC_FULL §12).
type Stats struct {
	Bindings int
	Buckets  int
}

// Stats returns s's binding-table occupancy.
func (s *Structure) Stats() Stats {
	return Stats{Bindings: s.bindings.Len(), Buckets: s.bindings.Buckets()}
}
