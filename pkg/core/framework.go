package core

// Widget is an immutable description of part of the tree.
type Widget interface {
	// CreateElement returns a fresh, unmounted element for this widget.
	CreateElement() Element
	// Key distinguishes siblings of the same type. Nil means no key.
	Key() any
}

// StatelessWidget builds its subtree purely from its own configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns a State that survives rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// ParentWidget is a leaf or container that lists its children directly
// instead of building them. Primitive markup widgets implement it.
type ParentWidget interface {
	Widget
	ChildWidgets() []Widget
}

// State is the mutable half of a StatefulWidget.
type State interface {
	InitState()
	Build(ctx BuildContext) Widget
	SetState(fn func())
	Dispose()
	DidChangeDependencies()
	DidUpdateWidget(oldWidget StatefulWidget)
}

// BuildContext is the handle a widget receives while building.
type BuildContext interface {
	// Widget returns the widget currently configuring the element.
	Widget() Widget
	// FindAncestor returns the nearest ancestor element matching predicate.
	FindAncestor(predicate func(Element) bool) Element
}

// Element is a widget mounted at a location in the tree.
type Element interface {
	BuildContext
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	Depth() int
	VisitChildren(visitor func(Element) bool)
}

// Disposable is implemented by resources released with their owner.
type Disposable interface {
	Dispose()
}

// MountRoot inflates widget as the root of a new tree owned by owner.
func MountRoot(widget Widget, owner *BuildOwner) Element {
	element := inflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}
