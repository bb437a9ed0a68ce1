package lark

// Loader is the narrow external-collaborator contract for file loading
// (spec.md §6): Require and InternStructure call it with the feature name
// when no matching structure already exists. Its result is the value
// produced by loading, which by convention is the structure the load
// populated.
type Loader interface {
	Load(name string) (Value, error)
}

// LoaderFunc adapts a plain Go func to a Loader.
type LoaderFunc func(name string) (Value, error)

// Load invokes f.
func (f LoaderFunc) Load(name string) (Value, error) {
	return f(name)
}

// Context packages the four roots spec.md §9's "Global state" design note
// calls for — current, default, specials, and registry — plus the
// process-wide lookup cache and the live-structure list GC sweeps walk.
// Every engine operation takes a *Context rather than reaching for
// package-level variables.
type Context struct {
	interner *Interner
	eval     Evaluator
	loader   Loader

	current  *Structure
	def      *Structure
	specials *Structure
	registry *Structure

	cache lookupCache
	live  []*Structure

	meta     *Structure
	metaName *Symbol
}

// Option configures a Context at construction, following the teacher's
// func(*T) Option pattern.
type Option func(*Context)

// WithInterner supplies the symbol interner used to resolve the well-known
// names the bootstrap needs (features, root/user-structure specials).
func WithInterner(in *Interner) Option {
	return func(c *Context) { c.interner = in }
}

// WithEvaluator supplies the Evaluator collaborator used to run thunks
// (make-structure headers/bodies) and eval forms.
func WithEvaluator(e Evaluator) Option {
	return func(c *Context) { c.eval = e }
}

// WithRootLoader supplies the Loader collaborator Require/InternStructure
// fall back to when a named feature has no structure yet.
func WithRootLoader(l Loader) Option {
	return func(c *Context) { c.loader = l }
}

// WithCacheSize is accepted for forward-compatible configuration but the
// lookup cache's size is architecturally fixed at 256 direct-mapped slots
// (spec.md §4.5); passing anything other than that is a no-op. Kept as an
// Option so callers can express "use the reference cache size" explicitly
// without the library silently guessing intent.
func WithCacheSize(n int) Option {
	return func(c *Context) {
		_ = n // documented no-op: see doc comment.
	}
}

// NewContext builds a bootstrap Context: an empty registry structure, a
// default structure, and a specials structure, wired together per spec.md
// §3's Name Registry and §9's four-root design note. The default structure
// becomes the initial current structure.
func NewContext(opts ...Option) *Context {
	c := &Context{interner: NewInterner()}
	for _, opt := range opts {
		opt(c)
	}

	c.registry = newStructure(nil)
	c.specials = newStructure(nil)
	c.def = newStructure(nil)
	c.current = c.def

	c.track(c.registry)
	c.track(c.specials)
	c.track(c.def)

	return c
}

// track adds s to the live-structure list GC sweeps walk (spec.md §4.8).
func (c *Context) track(s *Structure) {
	c.live = append(c.live, s)
}

// Interner returns the symbol interner the Context was built with.
func (c *Context) Interner() *Interner { return c.interner }

// Current returns the currently active structure.
func (c *Context) Current() *Structure { return c.current }

// Default returns the bootstrap default structure.
func (c *Context) Default() *Structure { return c.def }

// Specials returns the specials structure, whose bindings hold
// configuration values such as *root-structure* and *user-structure*
// (SPEC_FULL §12).
func (c *Context) Specials() *Structure { return c.specials }

// Registry returns the distinguished %structures structure whose binding
// table is the global name -> structure map.
func (c *Context) Registry() *Structure { return c.registry }

// PushStructure makes s the current structure, returning a function that
// restores the previous one. The Go analogue of structures.c's
// rep_push_structure/rep_pop_structure (SPEC_FULL §12): callers use
// `defer ctx.PushStructure(s)()`.
func (c *Context) PushStructure(s *Structure) (pop func()) {
	prev := c.current
	c.current = s
	return func() { c.current = prev }
}

// CacheStats returns a snapshot of the lookup cache's counters.
func (c *Context) CacheStats() CacheStats { return c.cache.Stats() }

const (
	rootStructureSpecial = "*root-structure*"
	userStructureSpecial = "*user-structure*"
)

// RootStructure resolves the *root-structure* special in the specials
// structure, falling back to the default structure if unset (SPEC_FULL
// §12, replacing structures.c's unconditional fixed root).
func (c *Context) RootStructure() *Structure {
	sym := c.interner.Intern(rootStructureSpecial)
	if v := c.specials.Ref(sym); !IsVoid(v) {
		if s, ok := v.(*Structure); ok {
			return s
		}
	}
	return c.def
}

// UserStructure resolves the *user-structure* special, falling back to
// the current structure if unset.
func (c *Context) UserStructure() *Structure {
	sym := c.interner.Intern(userStructureSpecial)
	if v := c.specials.Ref(sym); !IsVoid(v) {
		if s, ok := v.(*Structure); ok {
			return s
		}
	}
	return c.current
}
