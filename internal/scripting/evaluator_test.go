package scripting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/lark"
)

func TestEvalSetAndRefRoundTrip(t *testing.T) {
	rt := NewRuntime()
	ctx := lark.NewContext(lark.WithEvaluator(rt))
	rt.Bind(ctx)

	v, err := ctx.Eval(`set("answer", 42)`, ctx.Default())
	require.NoError(t, err)
	assert.NotNil(t, v)

	sym := ctx.Interner().Intern("answer")
	assert.Equal(t, int64(42), ctx.Default().Ref(sym))
}

func TestEvalResolvesThroughImportGraph(t *testing.T) {
	rt := NewRuntime()
	ctx := lark.NewContext(lark.WithEvaluator(rt))
	rt.Bind(ctx)

	a, err := ctx.MakeStructure(nil, nil, nil, ctx.Interner().Intern("A"))
	require.NoError(t, err)
	a.SetExportsAll(true)
	require.NoError(t, a.Set(ctx.Interner().Intern("greeting"), "hello"))

	b, err := ctx.MakeStructure(nil, nil, nil, ctx.Interner().Intern("B"))
	require.NoError(t, err)
	b.SetExportsAll(true)

	pop := ctx.PushStructure(b)
	_, err = ctx.Eval(`open("A")`, b)
	pop()
	require.NoError(t, err)
	require.Contains(t, b.Imports(), a.Name())

	result, err := ctx.Eval(`ref("greeting")`, b)
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestHeaderBodyClosuresRehome(t *testing.T) {
	rt := NewRuntime()
	ctx := lark.NewContext(lark.WithEvaluator(rt))
	rt.Bind(ctx)

	a, err := ctx.MakeStructure(nil, nil, nil, ctx.Interner().Intern("A"))
	require.NoError(t, err)
	a.SetExportsAll(true)
	require.NoError(t, a.Set(ctx.Interner().Intern("base"), 10))

	header := NewClosure(rt, `open("A")`)
	body := NewClosure(rt, `set("derived", ref("base"))`)

	s, err := ctx.MakeStructure(nil, header, body, ctx.Interner().Intern("Derived"))
	require.NoError(t, err)

	assert.Equal(t, int64(10), s.Ref(ctx.Interner().Intern("derived")))
	assert.Equal(t, []*lark.Symbol{ctx.Interner().Intern("A")}, s.Imports(), "meta import must not leak past the header thunk")
}
