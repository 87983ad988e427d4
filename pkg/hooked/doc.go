// Package hooked binds a state cell to a rendering target and exposes
// declarative setters that update it.
//
// A binding is created once with a target, a setter declaration, and
// options:
//
//	greeting := hooked.Bind(
//	    hooked.Component("Greeting", func(props core.Props) core.Widget {
//	        return widgets.TextOf(props["message"])
//	    }),
//	    hooked.Single(func(args ...any) any {
//	        return core.Props{"message": args[0]}
//	    }),
//	    hooked.Options{Initial: core.Props{"message": "Hello"}},
//	)
//
// Render greeting.Widget(props) anywhere in a widget tree. Each setter
// replaces the state wholesale; the rendered target receives
// Options.Props, then the supplied props, then the state, each layer winning
// over the one before it.
//
// # Setter declarations
//
// None exposes one identity setter that stores its argument. Single and List
// expose positional setters; Named exposes one map of setters. A setter
// called with a Transform evaluates it against the current snapshot first:
//
//	set := greeting.Setter(0)
//	set.Call("World")
//	set.Update(func(c hooked.Current) any {
//	    return c.HookProps.Text("message") + "!"
//	})
//
// Calling the identity setter with no arguments clears the state, so the
// target renders from its props alone.
//
// # Deferred results
//
// A setter result whose reserved marker key (Options.AsyncProp, default
// "__async") is truthy is applied immediately, with the marker replaced by a
// Completion. The caller receives a pending Result whose Deferred settles
// when the rendered component calls Completion.Resolve or Reject. Plain
// targets (Tag) never produce pending results and never receive the setters
// container.
package hooked
