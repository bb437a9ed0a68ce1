package scripting

import "github.com/jward/lark"

// Closure is a Risor script paired with a mutable home structure — the
// concrete Evaluator/Closure pairing make-structure's header and body
// thunks are armed with (spec.md §4.6, §9 "Closure home mutation"). The
// builder overwrites home via SetHomeStructure before every invocation;
// Call then runs Source in whatever structure that currently is.
type Closure struct {
	rt     *Runtime
	Source string
	home   *lark.Structure
}

// NewClosure wraps Risor source as a lark.Thunk/lark.Closure pair bound to
// rt for evaluation.
func NewClosure(rt *Runtime, source string) *Closure {
	return &Closure{rt: rt, Source: source}
}

// Call runs c.Source inside c.home's namespace (lark.Thunk).
func (c *Closure) Call() (lark.Value, error) {
	if c.home == nil {
		return nil, errClosureUnhomed
	}
	return c.rt.run(c.Source, c.home)
}

// HomeStructure returns the structure this closure currently resolves free
// variables against (lark.Closure).
func (c *Closure) HomeStructure() *lark.Structure { return c.home }

// SetHomeStructure rehomes the closure (lark.Closure). This mutates the
// captured closure in place — intentional, per spec.md §9.
func (c *Closure) SetHomeStructure(s *lark.Structure) { c.home = s }

var errClosureUnhomed = closureError("scripting: closure has no home structure")

type closureError string

func (e closureError) Error() string { return string(e) }
