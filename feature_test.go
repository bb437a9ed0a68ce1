package lark

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturepAndProvide(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	f := in.Intern("widgets")

	assert.False(t, ctx.Featurep(ctx.def, f))
	ctx.Provide(ctx.def, f)
	assert.True(t, ctx.Featurep(ctx.def, f))
}

func TestProvideIsIdempotent(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	f := in.Intern("widgets")

	ctx.Provide(ctx.def, f)
	ctx.Provide(ctx.def, f)

	list := featuresList(ctx.def, in)
	count := 0
	for _, sym := range list {
		if sym == f {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRequireIdempotence(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	f := in.Intern("existing")

	target, err := ctx.MakeStructure(nil, nil, nil, f)
	require.NoError(t, err)

	pop := ctx.PushStructure(ctx.def)
	defer pop()

	require.NoError(t, ctx.Require(f))
	assert.Contains(t, ctx.current.imports, f)
	assert.True(t, ctx.Featurep(ctx.current, f))

	importsBefore := len(ctx.current.imports)
	require.NoError(t, ctx.Require(f))
	assert.Equal(t, importsBefore, len(ctx.current.imports), "require must be idempotent")
	_ = target
}

func TestRequireLoadsViaLoader(t *testing.T) {
	var loadedWith string
	loader := LoaderFunc(func(name string) (Value, error) {
		loadedWith = name
		return nil, nil // no structure produced
	})
	ctx := NewContext(WithRootLoader(loader))
	in := ctx.interner
	f := in.Intern("unknown-feature")

	err := ctx.Require(f)
	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.Equal(t, "unknown-feature", loadedWith)
}

func TestRequireSurfacesLoaderError(t *testing.T) {
	loadErr := errors.New("file not found")
	loader := LoaderFunc(func(name string) (Value, error) {
		return nil, loadErr
	})
	ctx := NewContext(WithRootLoader(loader))
	f := ctx.interner.Intern("missing")

	err := ctx.Require(f)
	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.ErrorIs(t, err, loadErr)
}

func TestInternStructureReturnsExisting(t *testing.T) {
	ctx := NewContext()
	name := ctx.interner.Intern("Existing")
	want, err := ctx.MakeStructure(nil, nil, nil, name)
	require.NoError(t, err)

	got, err := ctx.InternStructure(name)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestInternStructureLoadsIntoRoot(t *testing.T) {
	var pushedStructure *Structure
	var loaded *Structure

	ctx := NewContext()
	ctx.loader = LoaderFunc(func(name string) (Value, error) {
		pushedStructure = ctx.current
		loaded, _ = ctx.MakeStructure(nil, nil, nil, nil)
		return loaded, nil
	})

	name := ctx.interner.Intern("Lib")
	got, err := ctx.InternStructure(name)
	require.NoError(t, err)
	assert.Same(t, loaded, got)
	assert.Same(t, ctx.RootStructure(), pushedStructure)
	assert.Same(t, name, got.Name())
}
