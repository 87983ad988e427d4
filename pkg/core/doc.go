// Package core provides the widget and element framework that hosts hooked
// bindings.
//
// Widgets are immutable descriptions of part of a tree. Elements are their
// mounted instances; they own identity and lifecycle. A BuildOwner collects
// elements marked dirty and rebuilds them, shallowest first, when the host
// pumps a frame.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type myState struct {
//	    core.StateBase
//	    count *core.Managed[int]
//	}
//
//	func (s *myState) InitState() {
//	    s.count = core.NewManaged(s, 0)
//	}
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: strconv.Itoa(s.count.Value())}
//	}
//
// Managed is the primitive cell: Set stores a value and schedules a rebuild
// of the owning element. Reads through Value observe the stored value
// immediately; the rebuild lands on the next BuildOwner.FlushBuild.
//
// # Props
//
// Props is the string-keyed attribute bag passed to components and primitive
// markup. It is always copied, never mutated in place, by the framework.
package core
