package scripting

import (
	"context"

	"github.com/risor-io/risor/object"

	"github.com/jward/lark"
)

// buildGlobals binds the structure-resolution surface a Risor script needs
// into its global namespace, the same shape as
// internal/runtime.Runtime.buildGlobals binding db/log/parse: each
// built-in closes over s and r.ctx so the script never sees a lark.Context
// or *lark.Structure value directly.
func (r *Runtime) buildGlobals(s *lark.Structure) map[string]any {
	return map[string]any{
		"ref":      r.refFn(s),
		"set":      r.setFn(s),
		"open":     r.openFn(),
		"access":   r.accessFn(),
		"provide":  r.provideFn(s),
		"require":  r.requireFn(),
		"featurep": r.featurepFn(s),
	}
}

func (r *Runtime) refFn(s *lark.Structure) *object.Builtin {
	return object.NewBuiltin("ref", func(ctx context.Context, args ...object.Object) object.Object {
		name, err := argString(args, 0, "ref")
		if err != nil {
			return err
		}
		sym := r.ctx.Interner().Intern(name)
		rec := r.ctx.Resolve(s, sym)
		if rec == nil {
			return object.Errorf("ref: %s: unbound", name)
		}
		return wrap(rec.Binding())
	})
}

func (r *Runtime) setFn(s *lark.Structure) *object.Builtin {
	return object.NewBuiltin("set", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("set", 2, len(args))
		}
		name, errObj := argString(args, 0, "set")
		if errObj != nil {
			return errObj
		}
		sym := r.ctx.Interner().Intern(name)
		if err := r.ctx.StructureSet(s, sym, unwrap(args[1])); err != nil {
			return object.Errorf("set: %s: %v", name, err)
		}
		return args[1]
	})
}

func (r *Runtime) openFn() *object.Builtin {
	return object.NewBuiltin("open", func(ctx context.Context, args ...object.Object) object.Object {
		names, errObj := argSymbols(r, args, "open")
		if errObj != nil {
			return errObj
		}
		if err := r.ctx.OpenStructures(names); err != nil {
			return object.Errorf("open: %v", err)
		}
		return object.Nil
	})
}

func (r *Runtime) accessFn() *object.Builtin {
	return object.NewBuiltin("access", func(ctx context.Context, args ...object.Object) object.Object {
		names, errObj := argSymbols(r, args, "access")
		if errObj != nil {
			return errObj
		}
		if err := r.ctx.AccessStructures(names); err != nil {
			return object.Errorf("access: %v", err)
		}
		return object.Nil
	})
}

func (r *Runtime) provideFn(s *lark.Structure) *object.Builtin {
	return object.NewBuiltin("provide", func(ctx context.Context, args ...object.Object) object.Object {
		name, errObj := argString(args, 0, "provide")
		if errObj != nil {
			return errObj
		}
		r.ctx.Provide(s, r.ctx.Interner().Intern(name))
		return object.Nil
	})
}

func (r *Runtime) requireFn() *object.Builtin {
	return object.NewBuiltin("require", func(ctx context.Context, args ...object.Object) object.Object {
		name, errObj := argString(args, 0, "require")
		if errObj != nil {
			return errObj
		}
		if err := r.ctx.Require(r.ctx.Interner().Intern(name)); err != nil {
			return object.Errorf("require: %v", err)
		}
		return object.Nil
	})
}

func (r *Runtime) featurepFn(s *lark.Structure) *object.Builtin {
	return object.NewBuiltin("featurep", func(ctx context.Context, args ...object.Object) object.Object {
		name, errObj := argString(args, 0, "featurep")
		if errObj != nil {
			return errObj
		}
		return object.NewBool(r.ctx.Featurep(s, r.ctx.Interner().Intern(name)))
	})
}

func argString(args []object.Object, i int, fn string) (string, *object.Error) {
	if i >= len(args) {
		return "", object.NewArgsError(fn, i+1, len(args))
	}
	str, ok := args[i].(*object.String)
	if !ok {
		return "", object.Errorf("%s: argument %d: expected string, got %T", fn, i, args[i])
	}
	return str.Value(), nil
}

func argSymbols(r *Runtime, args []object.Object, fn string) ([]*lark.Symbol, *object.Error) {
	out := make([]*lark.Symbol, 0, len(args))
	for i, a := range args {
		str, ok := a.(*object.String)
		if !ok {
			return nil, object.Errorf("%s: argument %d: expected string, got %T", fn, i, a)
		}
		out = append(out, r.ctx.Interner().Intern(str.Value()))
	}
	return out, nil
}

// wrap lifts a lark.Value into a Risor object.Object for return to script
// code: primitives get Risor's native representation where one is an exact
// match, everything else is proxied opaquely (internal/runtime/hostfuncs.go
// does the same for *sitter.Node).
func wrap(v lark.Value) object.Object {
	if lark.IsVoid(v) {
		return object.Nil
	}
	switch val := v.(type) {
	case nil:
		return object.Nil
	case string:
		return object.NewString(val)
	case bool:
		return object.NewBool(val)
	case int:
		return object.NewInt(int64(val))
	case int64:
		return object.NewInt(val)
	case object.Object:
		return val
	}
	p, err := object.NewProxy(v)
	if err != nil {
		return object.Errorf("wrap: %v", err)
	}
	return p
}

// unwrap (argument direction) recovers a lark.Value from a Risor argument,
// the inverse of wrap.
func unwrap(o object.Object) lark.Value {
	switch val := o.(type) {
	case *object.String:
		return val.Value()
	case *object.Bool:
		return val.Value()
	case *object.Int:
		return val.Value()
	case *object.Proxy:
		return val.Interface()
	default:
		return val
	}
}
