package core

import (
	"testing"

	"github.com/go-drift/hooked/pkg/errors"
)

// testStatelessWidget is a simple stateless widget for testing.
type testStatelessWidget struct {
	StatelessBase
	buildFn func(BuildContext) Widget
}

func (w testStatelessWidget) Build(ctx BuildContext) Widget {
	if w.buildFn != nil {
		return w.buildFn(ctx)
	}
	return nil
}

// testStatefulWidget is a simple stateful widget for testing.
type testStatefulWidget struct {
	StatefulBase
	createStateFn func() State
}

func (w testStatefulWidget) CreateState() State {
	if w.createStateFn != nil {
		return w.createStateFn()
	}
	return &testState{}
}

type testState struct {
	StateBase
	builds   int
	inits    int
	updates  int
	disposes int
	buildFn  func(BuildContext) Widget
}

func (s *testState) InitState() { s.inits++ }

func (s *testState) Build(ctx BuildContext) Widget {
	s.builds++
	if s.buildFn != nil {
		return s.buildFn(ctx)
	}
	return nil
}

func (s *testState) DidUpdateWidget(old StatefulWidget) { s.updates++ }

func (s *testState) Dispose() {
	s.disposes++
	s.StateBase.Dispose()
}

// testLeaf is a ParentWidget with a label and optional children.
type testLeaf struct {
	ParentBase
	label    string
	children []Widget
}

func (w testLeaf) ChildWidgets() []Widget { return w.children }

// testErrorHandler captures build errors for testing.
type testErrorHandler struct {
	errors.LogHandler
	buildErrors []*errors.BuildError
}

func (h *testErrorHandler) HandleBuildError(err *errors.BuildError) {
	h.buildErrors = append(h.buildErrors, err)
}

func TestStatelessElement_BuildPanic_ReportsError(t *testing.T) {
	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			panic("test panic in stateless build")
		},
	}

	root := MountRoot(widget, NewBuildOwner())
	if root == nil {
		t.Fatal("expected root element")
	}

	if len(handler.buildErrors) != 1 {
		t.Fatalf("expected 1 build error, got %d", len(handler.buildErrors))
	}
	err := handler.buildErrors[0]
	if err.Recovered != "test panic in stateless build" {
		t.Errorf("expected panic value 'test panic in stateless build', got %v", err.Recovered)
	}
	if err.Widget == "" {
		t.Error("expected Widget type to be set")
	}
	if err.StackTrace == "" {
		t.Error("expected StackTrace to be captured")
	}
}

func TestBuildPanic_UsesErrorWidgetBuilder(t *testing.T) {
	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	SetErrorWidgetBuilder(func(err *errors.BuildError) Widget {
		return testLeaf{label: "error"}
	})
	defer SetErrorWidgetBuilder(nil)

	widget := testStatelessWidget{
		buildFn: func(ctx BuildContext) Widget {
			panic("boom")
		},
	}
	root := MountRoot(widget, NewBuildOwner())

	var found bool
	root.VisitChildren(func(child Element) bool {
		if leaf, ok := child.Widget().(testLeaf); ok && leaf.label == "error" {
			found = true
		}
		return true
	})
	if !found {
		t.Error("expected error widget to replace failed build")
	}
}

func TestStatefulElement_Lifecycle(t *testing.T) {
	state := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return state }}
	owner := NewBuildOwner()

	root := MountRoot(widget, owner)

	if state.inits != 1 {
		t.Errorf("expected InitState once, got %d", state.inits)
	}
	if state.builds != 1 {
		t.Errorf("expected one build on mount, got %d", state.builds)
	}
	if state.Element() != root {
		t.Error("state should reference its element")
	}

	root.Unmount()
	if state.disposes != 1 {
		t.Errorf("expected Dispose once, got %d", state.disposes)
	}
	if !state.IsDisposed() {
		t.Error("state should be disposed after unmount")
	}
}

func TestSetState_SchedulesRebuild(t *testing.T) {
	state := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return state }}
	owner := NewBuildOwner()
	frames := 0
	owner.OnNeedsFrame = func() { frames++ }

	MountRoot(widget, owner)

	state.SetState(nil)
	state.SetState(nil)

	if frames != 1 {
		t.Errorf("expected one frame request for repeated SetState, got %d", frames)
	}
	if !owner.NeedsWork() {
		t.Fatal("expected dirty element after SetState")
	}
	if state.builds != 1 {
		t.Errorf("rebuild should wait for FlushBuild, got %d builds", state.builds)
	}

	owner.FlushBuild()

	if state.builds != 2 {
		t.Errorf("expected 2 builds after flush, got %d", state.builds)
	}
	if owner.NeedsWork() {
		t.Error("owner should be idle after flush")
	}
	if owner.Builds() != 1 {
		t.Errorf("expected 1 flushed rebuild, got %d", owner.Builds())
	}
}

func TestSetState_AfterDisposeIsNoop(t *testing.T) {
	state := &testState{}
	widget := testStatefulWidget{createStateFn: func() State { return state }}
	owner := NewBuildOwner()

	root := MountRoot(widget, owner)
	root.Unmount()

	called := false
	state.SetState(func() { called = true })
	if called {
		t.Error("SetState callback should not run after dispose")
	}
	if owner.NeedsWork() {
		t.Error("disposed state should not schedule a rebuild")
	}
}

func TestStatefulElement_UpdateKeepsState(t *testing.T) {
	state := &testState{}
	label := "first"
	child := func(ctx BuildContext) Widget { return testLeaf{label: label} }
	parent := testStatefulWidget{createStateFn: func() State {
		return &testState{buildFn: func(ctx BuildContext) Widget {
			return testStatefulWidget{createStateFn: func() State {
				state.buildFn = child
				return state
			}}
		}}
	}}
	owner := NewBuildOwner()

	root := MountRoot(parent, owner)
	root.(*StatefulElement).State().SetState(nil)
	owner.FlushBuild()

	if state.inits != 1 {
		t.Errorf("child state should be created once, got %d inits", state.inits)
	}
	if state.updates != 1 {
		t.Errorf("expected DidUpdateWidget once, got %d", state.updates)
	}
}

func TestParentElement_ReconcilesChildren(t *testing.T) {
	owner := NewBuildOwner()
	widget := testLeaf{label: "root", children: []Widget{
		testLeaf{label: "a"},
		testLeaf{label: "b"},
		testLeaf{label: "c"},
	}}

	root := MountRoot(widget, owner)
	if got := countChildren(root); got != 3 {
		t.Fatalf("expected 3 children, got %d", got)
	}

	var first Element
	root.VisitChildren(func(e Element) bool {
		first = e
		return false
	})

	root.Update(testLeaf{label: "root", children: []Widget{testLeaf{label: "a2"}}})

	if got := countChildren(root); got != 1 {
		t.Fatalf("expected 1 child after update, got %d", got)
	}
	var after Element
	root.VisitChildren(func(e Element) bool {
		after = e
		return false
	})
	if after != first {
		t.Error("same-typed child at the same index should be reused")
	}
	if after.Widget().(testLeaf).label != "a2" {
		t.Errorf("child widget not updated: %v", after.Widget())
	}
}

func TestFindAncestor(t *testing.T) {
	var ctxSeen BuildContext
	widget := testLeaf{label: "outer", children: []Widget{
		testStatelessWidget{buildFn: func(ctx BuildContext) Widget {
			ctxSeen = ctx
			return nil
		}},
	}}

	MountRoot(widget, NewBuildOwner())

	found := ctxSeen.FindAncestor(func(e Element) bool {
		leaf, ok := e.Widget().(testLeaf)
		return ok && leaf.label == "outer"
	})
	if found == nil {
		t.Error("expected to find outer ancestor")
	}
}

func TestFlushBuild_DepthOrder(t *testing.T) {
	var order []string
	inner := &testState{}
	outer := &testState{}
	inner.buildFn = func(ctx BuildContext) Widget {
		order = append(order, "inner")
		return nil
	}
	outer.buildFn = func(ctx BuildContext) Widget {
		order = append(order, "outer")
		return testStatefulWidget{createStateFn: func() State { return inner }}
	}
	owner := NewBuildOwner()
	MountRoot(testStatefulWidget{createStateFn: func() State { return outer }}, owner)

	order = nil
	inner.SetState(nil)
	outer.SetState(nil)
	owner.FlushBuild()

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("expected outer before inner, got %v", order)
	}
}

func countChildren(e Element) int {
	n := 0
	e.VisitChildren(func(Element) bool {
		n++
		return true
	})
	return n
}
