package lark

import "errors"

// Sentinel errors for the kinds named in spec.md §7. Callers match against
// these with errors.Is/errors.As; wrapped occurrences carry additional
// context via fmt.Errorf("lark: ...: %w", ...).
var (
	// ErrSettingConstant is returned by Set/StructureSet when the target
	// binding has been made immutable.
	ErrSettingConstant = errors.New("lark: setting constant")

	// ErrVoidValue is returned by ExternalRef and MakeBindingImmutable
	// when the referenced symbol has no binding, or the binding's value
	// is the Void sentinel.
	ErrVoidValue = errors.New("lark: void value")

	// ErrTypeMismatch is returned when an argument fails a declared
	// predicate (structure expected, symbol expected, interface-list
	// expected).
	ErrTypeMismatch = errors.New("lark: type mismatch")

	// ErrLoadFailure wraps an error surfaced from the Loader collaborator
	// through Require/InternStructure.
	ErrLoadFailure = errors.New("lark: load failure")
)
