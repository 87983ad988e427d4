package widgets

import (
	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/errors"
)

func init() {
	// Register the default error widget builder
	core.SetErrorWidgetBuilder(func(err *errors.BuildError) core.Widget {
		return ErrorWidget{Error: err}
	})
}

// ErrorWidget is shown in place of a subtree whose build failed. It renders
// a "div" with role "alert" and, when Verbose, the error message.
type ErrorWidget struct {
	core.StatelessBase
	// Error is the build error that occurred.
	Error *errors.BuildError
	// Verbose adds the error text below the summary.
	Verbose bool
}

func (e ErrorWidget) Build(ctx core.BuildContext) core.Widget {
	children := []core.Widget{
		Text{Content: "Something went wrong"},
	}
	if e.Verbose {
		errorText := "Unknown error"
		if e.Error != nil {
			errorText = e.Error.Error()
		}
		children = append(children, Tag{
			Name:  "pre",
			Props: core.Props{ChildrenProp: errorText},
		})
	}

	props := core.Props{"role": "alert"}
	if e.Error != nil {
		props["data-widget"] = e.Error.Widget
	}
	return Tag{Name: "div", Props: props, Children: children}
}
