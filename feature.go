package lark

import "fmt"

const featuresSymbolName = "features"

func featuresList(s *Structure, in *Interner) []*Symbol {
	v := s.Ref(in.Intern(featuresSymbolName))
	if IsVoid(v) {
		return nil
	}
	list, _ := v.([]*Symbol)
	return list
}

// Featurep reports whether f appears in s's features binding (spec.md
// §4.7 featurep).
func (c *Context) Featurep(s *Structure, f *Symbol) bool {
	return containsSymbol(featuresList(s, c.interner), f)
}

// Provide idempotently prepends f to s's features binding (spec.md §4.7
// provide).
func (c *Context) Provide(s *Structure, f *Symbol) {
	sym := c.interner.Intern(featuresSymbolName)
	list := featuresList(s, c.interner)
	if containsSymbol(list, f) {
		return
	}
	s.define(sym, append([]*Symbol{f}, list...))
	c.cache.invalidateSymbol(sym)
}

// Require implements spec.md §4.7's require: idempotent per structure,
// loading the named file into the current structure (so bare top-level
// code in it affects the caller) only when no structure is already
// registered or imported under that name.
func (c *Context) Require(f *Symbol) error {
	cur := c.current

	if c.Featurep(cur, f) {
		return nil
	}
	if containsSymbol(cur.imports, f) {
		return nil
	}

	target := c.GetStructure(f)
	if target == nil {
		if c.loader == nil {
			return ErrLoadFailure
		}
		val, err := c.loader.Load(f.Name())
		if err != nil {
			return fmt.Errorf("lark: require %s: %w: %w", f.Name(), ErrLoadFailure, err)
		}
		loaded, ok := val.(*Structure)
		if !ok || loaded == nil {
			return fmt.Errorf("lark: require %s: %w", f.Name(), ErrLoadFailure)
		}
		target = loaded
		if target.name == nil {
			c.NameStructure(target, f)
		}
	}

	cur.imports = append([]*Symbol{f}, cur.imports...)
	c.Provide(cur, f)
	c.cache.flush()
	return nil
}

// InternStructure implements spec.md §4.7's intern_structure: returns the
// named structure if one exists, otherwise loads it into the *root*
// structure's environment (not the caller's), for bootstrap and for
// open-structures directives where no side effect on the opener's own
// namespace beyond the import edge is wanted.
func (c *Context) InternStructure(name *Symbol) (*Structure, error) {
	if s := c.GetStructure(name); s != nil {
		return s, nil
	}
	if c.loader == nil {
		return nil, fmt.Errorf("lark: intern-structure %s: %w", name.Name(), ErrLoadFailure)
	}

	pop := c.PushStructure(c.RootStructure())
	val, err := c.loader.Load(name.Name())
	pop()
	if err != nil {
		return nil, fmt.Errorf("lark: intern-structure %s: %w: %w", name.Name(), ErrLoadFailure, err)
	}

	loaded, ok := val.(*Structure)
	if !ok || loaded == nil {
		return nil, fmt.Errorf("lark: intern-structure %s: %w", name.Name(), ErrLoadFailure)
	}
	if loaded.name == nil {
		c.NameStructure(loaded, name)
	}
	return loaded, nil
}
