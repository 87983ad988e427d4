package widgets

import (
	"github.com/go-drift/hooked/pkg/core"
)

// Component renders a composed unit from a prop bag. It is the rendering of
// a non-plain target: Props may carry behaviour such as setters.
type Component struct {
	core.StatelessBase
	// Name labels the component in diagnostics.
	Name string
	// Render produces the component's subtree.
	Render func(props core.Props) core.Widget
	// Props are passed to Render unchanged.
	Props core.Props
}

// Build calls Render with the component's props.
func (c Component) Build(ctx core.BuildContext) core.Widget {
	if c.Render == nil {
		return nil
	}
	return c.Render(c.Props)
}

// Key returns the "key" prop, if any.
func (c Component) Key() any {
	return c.Props["key"]
}

func (c Component) String() string {
	if c.Name == "" {
		return "Component"
	}
	return c.Name
}
