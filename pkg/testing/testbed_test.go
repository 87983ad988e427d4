package testing

import (
	"strconv"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/widgets"
)

// counter renders its count inside a labelled span. Increment is exposed
// through handle so tests can drive state changes.
type counter struct {
	core.StatefulBase
	initial int
	handle  *counterHandle
}

type counterHandle struct {
	increment func()
}

func (c counter) CreateState() core.State {
	return &counterState{}
}

type counterState struct {
	core.StateBase
	count int
}

func (s *counterState) InitState() {
	w := s.Element().Widget().(counter)
	s.count = w.initial
	if w.handle != nil {
		w.handle.increment = func() {
			s.SetState(func() { s.count++ })
		}
	}
}

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	return widgets.Tag{
		Name:  "div",
		Props: core.Props{"class": "counter"},
		Children: []core.Widget{
			widgets.Tag{
				Name:  "span",
				Props: core.Props{"title": "count", widgets.ChildrenProp: strconv.Itoa(s.count)},
			},
		},
	}
}
