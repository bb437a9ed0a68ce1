// Package scripting gives the engine's Evaluator/Closure collaborators
// (see the lark package's value.go) a real, runnable backend: Risor
// scripts stand in for the bytecode the out-of-scope reader/compiler
// would otherwise produce, grounded on mvp-joe-canopy's embedding of the
// same interpreter in internal/runtime.
package scripting

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/importer"

	"github.com/jward/lark"
)

// Runtime evaluates Risor source inside a lark.Structure's namespace. It
// implements lark.Evaluator.
type Runtime struct {
	ctx        *lark.Context
	scriptsDir string
	fsys       fs.FS
}

// Option configures a Runtime, following the teacher's functional-option
// pattern (internal/runtime.RuntimeOption).
type Option func(*Runtime)

// WithScriptsDir configures Runtime to resolve Risor `import` statements
// against files on disk, mirroring internal/runtime.WithRuntimeFS's
// disk-based sibling.
func WithScriptsDir(dir string) Option {
	return func(r *Runtime) { r.scriptsDir = dir }
}

// WithScriptsFS configures Runtime to resolve Risor `import` statements
// against an embedded fs.FS (internal/runtime.WithRuntimeFS).
func WithScriptsFS(fsys fs.FS) Option {
	return func(r *Runtime) { r.fsys = fsys }
}

// NewRuntime constructs a Runtime. Bind must be called with the lark
// Context it will evaluate against before any script runs — the two are
// constructed separately to break the cycle (the Context needs an
// Evaluator to exist, the Runtime needs a Context to resolve names
// against).
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Bind attaches ctx as the structure-resolution target for future Eval
// and Call0 invocations.
func (r *Runtime) Bind(ctx *lark.Context) { r.ctx = ctx }

// Call0 invokes a zero-argument thunk. lark.Thunk implementations built by
// this package (see closure.go) already know how to run themselves against
// their own home structure; plain Go thunks are simply called.
func (r *Runtime) Call0(fn lark.Thunk) (lark.Value, error) {
	return fn.Call()
}

// Eval runs form — expected to be a string of Risor source — inside s's
// namespace (lark.Evaluator.Eval). Free references in the script resolve
// against s via the "ref"/"set" builtins bound into the script's globals,
// which in turn drive the structure resolver (lark.Context.Resolve),
// exactly as spec.md's Evaluator contract describes resolving free
// variables through the engine rather than the other way around.
func (r *Runtime) Eval(form lark.Value, s *lark.Structure) (lark.Value, error) {
	src, ok := form.(string)
	if !ok {
		return nil, fmt.Errorf("scripting: eval: form must be Risor source (string), got %T", form)
	}
	return r.run(src, s)
}

func (r *Runtime) run(src string, s *lark.Structure) (lark.Value, error) {
	if r.ctx == nil {
		return nil, fmt.Errorf("scripting: runtime not bound to a lark.Context")
	}

	globals := r.buildGlobals(s)

	opts := make([]risor.Option, 0, len(globals)+1)
	for name, val := range globals {
		opts = append(opts, risor.WithGlobal(name, val))
	}
	if imp := r.buildImporter(globals); imp != nil {
		opts = append(opts, risor.WithImporter(imp))
	}

	result, err := risor.Eval(context.Background(), src, opts...)
	if err != nil {
		return nil, fmt.Errorf("scripting: eval: %w", err)
	}
	return unwrap(result), nil
}

// buildImporter wires Risor's `import` statement resolution to either an
// embedded fs.FS or a directory on disk, mirroring
// internal/runtime.Runtime.buildImporter exactly.
func (r *Runtime) buildImporter(globals map[string]any) importer.Importer {
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}

	if r.fsys != nil {
		return importer.NewFSImporter(importer.FSImporterOptions{
			GlobalNames: names,
			SourceFS:    r.fsys,
			Extensions:  []string{".lark"},
		})
	}
	if r.scriptsDir != "" {
		return importer.NewLocalImporter(importer.LocalImporterOptions{
			GlobalNames: names,
			SourceDir:   r.scriptsDir,
			Extensions:  []string{".lark"},
		})
	}
	return nil
}
