package hooked

import (
	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/widgets"
)

// RenderFunc renders a composed unit from its final props.
type RenderFunc func(props core.Props) core.Widget

// Target is what a binding renders into: either a composed unit built by a
// RenderFunc, or a plain markup tag. Construct it with Component or Tag.
type Target struct {
	name   string
	render RenderFunc
	plain  bool
}

// Component targets a composed unit. Composed targets receive every prop,
// including the setters container and deferred completions.
func Component(name string, render RenderFunc) Target {
	return Target{name: name, render: render}
}

// Tag targets a primitive markup element such as "span". Plain targets never
// receive the setters container and never produce pending results.
func Tag(name string) Target {
	return Target{name: name, plain: true}
}

// IsPlain reports whether the target is a primitive markup element.
func (t Target) IsPlain() bool {
	return t.plain
}

// Name returns the tag name or component label.
func (t Target) Name() string {
	return t.name
}

func (t Target) build(props core.Props) core.Widget {
	if t.plain {
		return widgets.Tag{Name: t.name, Props: props}
	}
	return widgets.Component{Name: t.name, Render: t.render, Props: props}
}
