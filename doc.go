// Package lark implements a Scheme48/SML-style module/namespace engine for
// an embedded Lisp-family interpreter: named, first-class structures that
// export a controlled interface, import and access other structures, and
// supply the binding-resolution path the host evaluator uses for every
// free-variable reference.
//
// # Structures
//
// A [Structure] owns a hashed binding table ([Table]), an ordered import
// list, an ordered accessible list, and a set of flags governing export
// behavior. Structures are created with [Context.MakeStructure], which
// runs an optional header thunk (where "open" and "access" directives
// belong) and an optional body thunk (where bindings get populated) in
// the new structure's own environment before returning it.
//
//	ctx := lark.NewContext()
//	a, err := ctx.MakeStructure(nil, nil, body, ctx.Interner().Intern("A"))
//
// # Resolution
//
// [Context.Resolve] is the free-variable resolution path: a local binding
// in the current structure always wins; failing that, the transitive
// import graph is walked via [Context.ExternalRef]'s sibling,
// import_lookup, honoring each target's export list and guarding against
// import cycles with a per-structure EXCLUSION flag. A fixed-size,
// direct-mapped lookup cache keyed by structure and symbol identity
// memoizes the transitive walk; every structural mutation that could
// change a resolution result invalidates the relevant cache entries.
//
// # Names and features
//
// [Context.NameStructure] registers a structure under a symbol in the
// engine's name registry; [Context.Require] and [Context.InternStructure]
// load structures on demand through the [Loader] collaborator, tracking
// per-structure "features" to make repeated requires idempotent.
//
// # External collaborators
//
// The reader/parser, the bytecode evaluator, the closure representation,
// and the garbage collector all live outside this package, reached only
// through the narrow [Evaluator], [Closure], and [Loader] interfaces, and
// through the [Context.Mark]/[Context.Sweep] hooks this package publishes
// for an embedding host's collector to call. The internal/scripting
// package provides one concrete, Risor-backed implementation of
// [Evaluator] and [Closure].
package lark
