package lark

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcThunk is a test double implementing both Thunk and Closure, since
// make-structure arms a thunk's home structure before invoking it.
type funcThunk struct {
	home *Structure
	fn   func(home *Structure) (Value, error)
}

func (f *funcThunk) Call() (Value, error)          { return f.fn(f.home) }
func (f *funcThunk) HomeStructure() *Structure     { return f.home }
func (f *funcThunk) SetHomeStructure(s *Structure) { f.home = s }

func TestMakeStructureRunsHeaderThenBody(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner

	var order []string
	header := &funcThunk{fn: func(home *Structure) (Value, error) {
		order = append(order, "header")
		assert.Same(t, home, ctx.current)
		return nil, nil
	}}
	body := &funcThunk{fn: func(home *Structure) (Value, error) {
		order = append(order, "body")
		require.NoError(t, home.Set(in.Intern("x"), 1))
		return nil, nil
	}}

	s, err := ctx.MakeStructure(nil, header, body, in.Intern("M"))
	require.NoError(t, err)
	assert.Equal(t, []string{"header", "body"}, order)
	assert.Equal(t, 1, s.Ref(in.Intern("x")))
}

func TestMakeStructureHeaderCanOpenViaMeta(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	foo := in.Intern("foo")

	a, err := ctx.MakeStructure(nil, nil, nil, in.Intern("A"))
	require.NoError(t, err)
	a.SetExportsAll(true)
	require.NoError(t, a.Set(foo, 7))

	header := &funcThunk{fn: func(home *Structure) (Value, error) {
		openFn := ctx.ensureMeta().Ref(in.Intern("open")).(func([]*Symbol) error)
		return nil, openFn([]*Symbol{in.Intern("A")})
	}}

	s, err := ctx.MakeStructure(nil, header, nil, in.Intern("B"))
	require.NoError(t, err)

	assert.Contains(t, s.Imports(), in.Intern("A"))
	assert.NotContains(t, s.Imports(), ctx.metaName, "meta import must be removed after the header thunk runs")
	assert.Equal(t, 7, ctx.Resolve(s, foo).binding)
}

func TestMakeStructureDiscardsOnHeaderError(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	boom := errors.New("boom")

	header := &funcThunk{fn: func(home *Structure) (Value, error) {
		return nil, boom
	}}

	name := in.Intern("Broken")
	liveBefore := len(ctx.Live())

	_, err := ctx.MakeStructure(nil, header, nil, name)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, ctx.GetStructure(name))
	assert.Equal(t, liveBefore, len(ctx.Live()))
}

func TestMakeStructureDiscardsOnBodyError(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner
	boom := errors.New("boom")

	body := &funcThunk{fn: func(home *Structure) (Value, error) {
		return nil, boom
	}}

	name := in.Intern("BrokenBody")
	_, err := ctx.MakeStructure(nil, nil, body, name)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, ctx.GetStructure(name))
}

func TestOpenStructuresSkipsAlreadyImported(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner

	a, err := ctx.MakeStructure(nil, nil, nil, in.Intern("A"))
	require.NoError(t, err)
	_ = a

	pop := ctx.PushStructure(ctx.def)
	defer pop()

	require.NoError(t, ctx.OpenStructures([]*Symbol{in.Intern("A")}))
	assert.Equal(t, 1, len(ctx.current.imports))

	require.NoError(t, ctx.OpenStructures([]*Symbol{in.Intern("A")}))
	assert.Equal(t, 1, len(ctx.current.imports))
}

func TestAccessStructuresAddsToAccessible(t *testing.T) {
	ctx := NewContext()
	in := ctx.interner

	_, err := ctx.MakeStructure(nil, nil, nil, in.Intern("A"))
	require.NoError(t, err)

	require.NoError(t, ctx.AccessStructures([]*Symbol{in.Intern("A")}))
	assert.Contains(t, ctx.current.accessible, in.Intern("A"))
	assert.NotContains(t, ctx.current.imports, in.Intern("A"))
}
