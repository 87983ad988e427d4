package widgets

import (
	"strings"
	"testing"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/errors"
)

type silentHandler struct{}

func (silentHandler) HandleError(*errors.BindError)       {}
func (silentHandler) HandlePanic(*errors.PanicError)      {}
func (silentHandler) HandleBuildError(*errors.BuildError) {}

func collectText(root core.Element) string {
	var b strings.Builder
	var walk func(core.Element)
	walk = func(e core.Element) {
		if text, ok := e.Widget().(Text); ok {
			b.WriteString(text.Content)
		}
		e.VisitChildren(func(child core.Element) bool {
			walk(child)
			return true
		})
	}
	walk(root)
	return b.String()
}

func TestErrorWidget_ReplacesPanickingComponent(t *testing.T) {
	errors.SetHandler(silentHandler{})
	t.Cleanup(func() { errors.SetHandler(nil) })

	root := core.MountRoot(Component{
		Name: "Broken",
		Render: func(core.Props) core.Widget {
			panic("render failed")
		},
	}, core.NewBuildOwner())

	var found *ErrorWidget
	root.VisitChildren(func(e core.Element) bool {
		if w, ok := e.Widget().(ErrorWidget); ok {
			found = &w
		}
		return true
	})
	if found == nil {
		t.Fatal("expected ErrorWidget in place of the failed build")
	}
	if found.Error == nil || found.Error.Recovered != "render failed" {
		t.Errorf("expected recovered panic value, got %+v", found.Error)
	}
	if got := collectText(root); got != "Something went wrong" {
		t.Errorf("expected summary text, got %q", got)
	}
}

func TestErrorWidget_Verbose(t *testing.T) {
	err := &errors.BuildError{Widget: "widgets.Component", Recovered: "boom"}
	root := core.MountRoot(ErrorWidget{Error: err, Verbose: true}, core.NewBuildOwner())

	text := collectText(root)
	if !strings.Contains(text, "panic in widgets.Component.Build(): boom") {
		t.Errorf("expected error details, got %q", text)
	}

	var div Tag
	root.VisitChildren(func(e core.Element) bool {
		div, _ = e.Widget().(Tag)
		return false
	})
	if div.Props.Text("role") != "alert" || div.Props.Text("data-widget") != "widgets.Component" {
		t.Errorf("unexpected div props %v", div.Props)
	}
}

func TestComponent_RendersProps(t *testing.T) {
	c := Component{
		Name:  "Greeting",
		Props: core.Props{"message": "Hi", "key": "g"},
		Render: func(props core.Props) core.Widget {
			return TextOf(props["message"])
		},
	}
	if c.Key() != "g" || c.String() != "Greeting" {
		t.Errorf("unexpected key/name %v/%s", c.Key(), c.String())
	}
	if got := collectText(core.MountRoot(c, core.NewBuildOwner())); got != "Hi" {
		t.Errorf("expected 'Hi', got %q", got)
	}
	if (Component{}).String() != "Component" {
		t.Error("expected default component name")
	}
	if (Component{}).Build(nil) != nil {
		t.Error("component without Render should build nothing")
	}
}
