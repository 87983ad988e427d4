package widgets

import (
	"fmt"

	"github.com/go-drift/hooked/pkg/core"
)

// Text is a leaf that displays a string.
//
//	Text{Content: "Hello"}
type Text struct {
	core.ParentBase
	// Content is the text string to display.
	Content string
}

// ChildWidgets returns nil; Text is a leaf.
func (t Text) ChildWidgets() []core.Widget {
	return nil
}

// TextOf renders any value as Text. Nil renders as empty text.
func TextOf(v any) Text {
	if v == nil {
		return Text{}
	}
	if s, ok := v.(string); ok {
		return Text{Content: s}
	}
	return Text{Content: fmt.Sprint(v)}
}
