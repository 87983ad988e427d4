package hooked_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/hooked"
	hookedtest "github.com/go-drift/hooked/pkg/testing"
	"github.com/go-drift/hooked/pkg/widgets"
)

// greeting renders props["message"] and records the props it last saw.
type greeting struct {
	last core.Props
}

func (g *greeting) target() hooked.Target {
	return hooked.Component("Greeting", func(props core.Props) core.Widget {
		g.last = props
		return widgets.TextOf(props["message"])
	})
}

func setMessage(args ...any) any {
	return core.Props{"message": args[0]}
}

func TestBind_ExposedShapes(t *testing.T) {
	g := &greeting{}

	none := hooked.Bind(g.target(), hooked.None(), hooked.Options{})
	require.Len(t, none.Exposed(), 3)
	assert.Equal(t, hooked.SettersNone, none.Kind())
	assert.Same(t, none.Setter(0), none.Exposed()[1])

	single := hooked.Bind(g.target(), hooked.Single(setMessage), hooked.Options{})
	require.Len(t, single.Exposed(), 3)
	assert.Equal(t, hooked.SettersSingle, single.Kind())

	list := hooked.Bind(g.target(), hooked.List(setMessage, setMessage, nil), hooked.Options{})
	require.Len(t, list.Exposed(), 5)
	assert.Len(t, list.Setters(), 3)
	assert.Nil(t, list.Setter(3))
	assert.Equal(t, "#2", list.Setter(2).Name())

	named := hooked.Bind(g.target(), hooked.Named(map[string]hooked.SetterFunc{
		"set":   setMessage,
		"reset": nil,
	}), hooked.Options{})
	exposed := named.Exposed()
	require.Len(t, exposed, 3)
	setters, ok := exposed[1].(map[string]*hooked.Setter)
	require.True(t, ok)
	assert.Len(t, setters, 2)
	assert.Equal(t, []string{"reset", "set"}, named.Names())
	assert.Empty(t, named.Setters())
	assert.Equal(t, "set", setters["set"].Name())

	_, isWidgetFn := exposed[0].(func(core.Props) core.Widget)
	assert.True(t, isWidgetFn)
	_, isCurrentFn := exposed[2].(func() hooked.Current)
	assert.True(t, isCurrentFn)
}

func TestBind_SingleNilIsNone(t *testing.T) {
	b := hooked.Bind(hooked.Tag("span"), hooked.Single(nil), hooked.Options{})
	assert.Equal(t, hooked.SettersNone, b.Kind())
	assert.Equal(t, 1, hooked.Single(nil).Len())
	assert.Equal(t, 2, hooked.List(nil, nil).Len())
}

func TestBind_DisplayName(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.None(), hooked.Options{})
	assert.Equal(t, hooked.DefaultDisplayName, b.DisplayName())
	assert.NotEmpty(t, b.ID())

	named := hooked.Bind(g.target(), hooked.None(), hooked.Options{DisplayName: "Greeter"})
	assert.Equal(t, "Greeter", named.DisplayName())
	assert.Equal(t, "Greeter", named.Widget(nil).(interface{ String() string }).String())
	assert.NotEqual(t, b.ID(), named.ID())
}

func TestDefaultSetter_SetAndReset(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.None(), hooked.Options{})
	tester := hookedtest.NewWidgetTesterWithT(t)
	require.NoError(t, tester.PumpWidget(b.Widget(core.Props{"message": "Hi"})))
	assert.Equal(t, "Hi", tester.TextContent())

	set := b.Setter(0)
	require.NoError(t, tester.Act(func() {
		result, err := set.Call(core.Props{"message": "Hello"})
		require.NoError(t, err)
		assert.True(t, result.Applied())
	}))
	assert.Equal(t, "Hello", tester.TextContent())

	require.NoError(t, tester.Act(func() {
		_, err := set.Call()
		require.NoError(t, err)
	}))
	assert.Equal(t, "Hi", tester.TextContent())
}

func TestDefaultSetter_IgnoresExtraArguments(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.None(), hooked.Options{})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(nil))

	tester.Act(func() {
		b.Setter(0).MustCall(core.Props{"message": "first"}, core.Props{"message": "second"})
	})
	assert.Equal(t, "first", tester.TextContent())
}

func TestInitialState_OverridesProps(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.None(), hooked.Options{
		Initial: core.Props{"message": "Init"},
	})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(core.Props{"message": "Hi"}))

	assert.Equal(t, "Init", tester.TextContent())
	assert.Equal(t, "Init", b.Current().HookProps["message"])
	assert.Equal(t, "Hi", b.Current().Props["message"])
}

func TestRenderProps_Precedence(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.None(), hooked.Options{
		Props: core.Props{"message": "default", "color": "red", "size": 1},
	})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(core.Props{"message": "Hi", "color": "blue"}))

	assert.Equal(t, "Hi", g.last["message"])
	assert.Equal(t, "blue", g.last["color"])
	assert.Equal(t, 1, g.last["size"])

	tester.Act(func() { b.Setter(0).MustCall(core.Props{"color": "green"}) })
	assert.Equal(t, "Hi", g.last["message"])
	assert.Equal(t, "green", g.last["color"])
	assert.Equal(t, core.Props{"message": "Hi", "color": "blue", "size": 1}, b.Current().Props)
}

func TestCurrent_AfterMount(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.None(), hooked.Options{})
	assert.False(t, b.Mounted())

	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(core.Props{"message": "Hi"}))
	assert.True(t, b.Mounted())

	b.Setter(0).MustCall(core.Props{"message": "pending"})
	current := b.Current()
	assert.Equal(t, "pending", current.HookProps["message"])

	current.HookProps["message"] = "mutated"
	assert.Equal(t, "pending", b.Current().HookProps["message"])
}

func TestSettersContainer_Attached(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.List(setMessage, nil), hooked.Options{})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(nil))

	container, ok := g.last[hooked.DefaultSettersProp].([]*hooked.Setter)
	require.True(t, ok)
	require.Len(t, container, 2)
	assert.Same(t, b.Setter(1), container[1])

	tester.Act(func() { container[0].MustCall("from props") })
	assert.Equal(t, "from props", tester.TextContent())
}

func TestSettersContainer_NamedMap(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.Named(map[string]hooked.SetterFunc{
		"greet": setMessage,
	}), hooked.Options{})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(nil))

	container, ok := g.last[hooked.DefaultSettersProp].(map[string]*hooked.Setter)
	require.True(t, ok)
	tester.Act(func() { container["greet"].MustCall("named") })
	assert.Equal(t, "named", tester.TextContent())
}

func TestNamed_ReturnsCopy(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.Named(map[string]hooked.SetterFunc{
		"greet": setMessage,
	}), hooked.Options{})

	named := b.Named()
	delete(named, "greet")
	named["extra"] = b.Setter(0)

	assert.Equal(t, []string{"greet"}, b.Names())
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(nil))

	container, ok := g.last[hooked.DefaultSettersProp].(map[string]*hooked.Setter)
	require.True(t, ok)
	assert.Len(t, container, 1)
	assert.NotNil(t, container["greet"])
}

func TestSettersContainer_Options(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.Single(setMessage), hooked.Options{SettersProp: "actions"})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(nil))

	assert.Contains(t, g.last, "actions")
	assert.NotContains(t, g.last, hooked.DefaultSettersProp)

	omit := hooked.Bind(g.target(), hooked.Single(setMessage), hooked.Options{OmitSetters: true})
	tester.PumpWidget(omit.Widget(nil))
	assert.NotContains(t, g.last, hooked.DefaultSettersProp)
}

func TestPlainTarget_NoSettersContainer(t *testing.T) {
	b := hooked.Bind(hooked.Tag("span"), hooked.None(), hooked.Options{
		Props: core.Props{"title": "greeting"},
	})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(core.Props{widgets.ChildrenProp: "Hi"}))

	span := tester.Find(hookedtest.ByTag("span"))
	require.True(t, span.Exists())
	assert.Equal(t, "Hi", span.TextContent())
	assert.Equal(t, "greeting", span.Props()["title"])
	assert.NotContains(t, span.Props(), hooked.DefaultSettersProp)

	tester.Act(func() {
		b.Setter(0).MustCall(core.Props{widgets.ChildrenProp: "Hello"})
	})
	assert.Equal(t, "Hello", tester.TextContent())
}

func TestBindings_Independent(t *testing.T) {
	first := hooked.Bind(hooked.Tag("b"), hooked.None(), hooked.Options{})
	second := hooked.Bind(hooked.Tag("i"), hooked.None(), hooked.Options{})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.FragmentOf(
		first.Widget(core.Props{widgets.ChildrenProp: "one"}),
		second.Widget(core.Props{widgets.ChildrenProp: "two"}),
	))
	assert.Equal(t, "onetwo", tester.TextContent())

	tester.Act(func() {
		first.Setter(0).MustCall(core.Props{widgets.ChildrenProp: "uno"})
	})
	assert.Equal(t, "unotwo", tester.TextContent())
	assert.Empty(t, second.Current().HookProps)
}

func TestRemount_ResetsToInitial(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.None(), hooked.Options{
		Initial: core.Props{"message": "Init"},
	})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(nil))
	tester.Act(func() { b.Setter(0).MustCall(core.Props{"message": "changed"}) })
	assert.Equal(t, "changed", tester.TextContent())

	tester.PumpWidget(widgets.Text{Content: "elsewhere"})
	assert.False(t, b.Mounted())

	b.Setter(0).MustCall(core.Props{"message": "offscreen"})
	assert.Equal(t, "offscreen", b.Current().HookProps["message"])

	tester.PumpWidget(b.Widget(nil))
	assert.True(t, b.Mounted())
	assert.Equal(t, "Init", tester.TextContent())
	assert.Equal(t, "Init", b.Current().HookProps["message"])
}

func TestSnapshot_BoundComponent(t *testing.T) {
	g := &greeting{}
	b := hooked.Bind(g.target(), hooked.Single(setMessage), hooked.Options{DisplayName: "Greeter"})
	tester := hookedtest.NewWidgetTesterWithT(t)
	tester.PumpWidget(b.Widget(core.Props{"message": "Hi"}))

	tree := tester.CaptureSnapshot().Tree
	require.NotNil(t, tree)
	assert.Equal(t, "HookedWidget", tree.Type)
	assert.Equal(t, "Greeter", tree.Name)
	require.Len(t, tree.Children, 1)
	component := tree.Children[0]
	assert.Equal(t, "Greeting", component.Name)
	assert.Equal(t, "Hi", component.Props["message"])
	assert.Equal(t, []any{"<*hooked.Setter>"}, component.Props[hooked.DefaultSettersProp])
}
