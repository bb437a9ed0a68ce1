package lark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocalShadowsImport(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	foo := in.Intern("foo")

	a, err := ctx.MakeStructure(nil, nil, nil, in.Intern("A"))
	require.NoError(t, err)
	a.SetExportsAll(true)
	require.NoError(t, a.Set(foo, 1))

	b, err := ctx.MakeStructure(nil, nil, nil, in.Intern("B"))
	require.NoError(t, err)
	b.imports = []*Symbol{a.Name()}
	require.NoError(t, b.Set(foo, 99)) // local, non-exported

	rec := ctx.Resolve(b, foo)
	require.NotNil(t, rec)
	assert.Equal(t, 99, rec.binding)
}

// Local shadowing law, spec.md §8: a local non-exported binding blocks
// recursive_lookup from reaching a deeper export entirely.
func TestRecursiveLookupLocalNonExportedShadows(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	foo := in.Intern("foo")

	a, err := ctx.MakeStructure(nil, nil, nil, in.Intern("A"))
	require.NoError(t, err)
	a.SetExportsAll(true)
	require.NoError(t, a.Set(foo, 1))

	b, err := ctx.MakeStructure(nil, nil, nil, in.Intern("B"))
	require.NoError(t, err)
	b.SetExportsAll(true)
	b.imports = []*Symbol{a.Name()}
	require.NoError(t, b.Set(foo, 0))
	b.bindings.Lookup(foo).exported = false

	c, err := ctx.MakeStructure(nil, nil, nil, in.Intern("C"))
	require.NoError(t, err)
	c.imports = []*Symbol{b.Name()}

	assert.Nil(t, ctx.recursiveLookup(b.Name(), foo))
	assert.Nil(t, ctx.importLookup(c, foo))
}

func TestRecursiveLookupCyclicTerminates(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	a, err := ctx.MakeStructure(nil, nil, nil, in.Intern("A"))
	require.NoError(t, err)
	b, err := ctx.MakeStructure(nil, nil, nil, in.Intern("B"))
	require.NoError(t, err)

	a.SetExportsAll(true)
	b.SetExportsAll(true)
	a.imports = []*Symbol{b.Name()}
	b.imports = []*Symbol{a.Name()}

	aSym := in.Intern("a")
	bSym := in.Intern("b")
	require.NoError(t, a.Set(aSym, 1))
	require.NoError(t, b.Set(bSym, 2))

	c, err := ctx.MakeStructure(nil, nil, nil, in.Intern("C"))
	require.NoError(t, err)
	c.imports = []*Symbol{a.Name()}

	recA := ctx.Resolve(c, aSym)
	recB := ctx.Resolve(c, bSym)

	require.NotNil(t, recA)
	require.NotNil(t, recB)
	assert.Equal(t, 1, recA.binding)
	assert.Equal(t, 2, recB.binding)
	assert.False(t, a.exclusion)
	assert.False(t, b.exclusion)
}

func TestExternalRefRequiresAccessOrImport(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	x := in.Intern("x")

	a, err := ctx.MakeStructure(nil, nil, nil, in.Intern("A"))
	require.NoError(t, err)
	a.SetExportsAll(true)
	require.NoError(t, a.Set(x, 10))

	b, err := ctx.MakeStructure(nil, nil, nil, in.Intern("B"))
	require.NoError(t, err)

	_, err = ctx.ExternalRef(b, a.Name(), x)
	assert.ErrorIs(t, err, ErrVoidValue)

	b.accessible = []*Symbol{a.Name()}
	v, err := ctx.ExternalRef(b, a.Name(), x)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	assert.True(t, IsVoid(b.Ref(x)), "access must not make the binding directly visible")
}

func TestExternalRefVoidValue(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	x := in.Intern("x")

	a, err := ctx.MakeStructure(nil, nil, nil, in.Intern("A"))
	require.NoError(t, err)
	a.SetExportsAll(true)

	b, err := ctx.MakeStructure(nil, nil, nil, in.Intern("B"))
	require.NoError(t, err)
	b.accessible = []*Symbol{a.Name()}

	_, err = ctx.ExternalRef(b, a.Name(), x)
	assert.ErrorIs(t, err, ErrVoidValue)
}
