package widgets

import (
	"github.com/go-drift/hooked/pkg/core"
)

// ChildrenProp is the prop key whose value becomes a Tag's content.
const ChildrenProp = "children"

// Tag is a primitive markup element such as "span" or "div". Its props are
// plain attributes; anything stored under ChildrenProp becomes content:
// a string renders as Text, a widget renders as itself, and a slice of
// widgets renders each in order.
//
//	Tag{Name: "span", Props: core.Props{"children": "Hi"}}
type Tag struct {
	core.ParentBase
	// Name is the markup tag name.
	Name string
	// Props are the element attributes.
	Props core.Props
	// Children are appended after any content taken from Props.
	Children []core.Widget
}

// ChildWidgets returns the content from Props followed by Children.
func (t Tag) ChildWidgets() []core.Widget {
	var out []core.Widget
	switch content := t.Props[ChildrenProp].(type) {
	case nil:
	case core.Widget:
		out = append(out, content)
	case []core.Widget:
		out = append(out, content...)
	default:
		out = append(out, TextOf(content))
	}
	return append(out, t.Children...)
}

// Key returns the "key" attribute, if any.
func (t Tag) Key() any {
	return t.Props["key"]
}

// Attributes returns the props without the content entry.
func (t Tag) Attributes() core.Props {
	attrs, _ := t.Props.Without(ChildrenProp)
	return attrs
}

// Fragment groups children without introducing markup.
type Fragment struct {
	core.ParentBase
	Children []core.Widget
}

// ChildWidgets returns the fragment's children.
func (f Fragment) ChildWidgets() []core.Widget {
	return f.Children
}

// FragmentOf builds a Fragment from the given children.
func FragmentOf(children ...core.Widget) Fragment {
	return Fragment{Children: children}
}
