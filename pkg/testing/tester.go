package testing

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/widgets"
)

// DefaultMaxFrames bounds PumpAndSettle.
const DefaultMaxFrames = 100

// ErrSettleTimeout is returned when PumpAndSettle exceeds its frame budget.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: tree did not settle")

// WidgetTester mounts a widget tree and drives its build phase by hand.
// Setter calls mark elements dirty; nothing rebuilds until Pump.
type WidgetTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	dispatches []func()
	frames     int
}

// NewWidgetTester creates a tester with an empty tree.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{
		buildOwner: core.NewBuildOwner(),
	}
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t testing.TB) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree, disposing every state in it.
func (t *WidgetTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// BuildOwner returns the owner that tracks dirty elements.
func (t *WidgetTester) BuildOwner() *core.BuildOwner {
	return t.buildOwner
}

// PumpWidget mounts (or remounts) a widget and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	t.Cleanup()
	t.root = core.MountRoot(widget, t.buildOwner)
	return t.Pump()
}

// Pump runs a single frame: queued dispatches, then the build flush.
func (t *WidgetTester) Pump() error {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.buildOwner.FlushBuild()
	t.frames++
	return nil
}

// PumpAndSettle runs frames until nothing is dirty and no dispatch is
// queued. It returns ErrSettleTimeout after DefaultMaxFrames frames.
func (t *WidgetTester) PumpAndSettle() error {
	for range DefaultMaxFrames {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.needsWork() {
			return nil
		}
	}
	return ErrSettleTimeout
}

// Act runs fn, typically a batch of setter calls, then pumps one frame.
func (t *WidgetTester) Act(fn func()) error {
	fn()
	return t.Pump()
}

func (t *WidgetTester) needsWork() bool {
	return t.buildOwner.NeedsWork() || len(t.dispatches) > 0
}

// Dispatch queues a callback for the next frame.
func (t *WidgetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Frames returns how many frames have been pumped.
func (t *WidgetTester) Frames() int {
	return t.frames
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}

// TextContent concatenates every Text in the tree in document order.
func (t *WidgetTester) TextContent() string {
	if t.root == nil {
		return ""
	}
	return textContent(t.root)
}

func textContent(root core.Element) string {
	var b strings.Builder
	walkTree(root, func(e core.Element) bool {
		if text, ok := e.Widget().(widgets.Text); ok {
			b.WriteString(text.Content)
		}
		return true
	})
	return b.String()
}
