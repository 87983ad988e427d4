// Package testing provides a widget testing harness for hooked bindings.
//
// # Quick Start
//
// Create a tester, pump a widget, drive setters, and assert on the tree:
//
//	func TestGreeting(t *testing.T) {
//	    tester := hookedtest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(greeting.Widget(core.Props{"message": "Hi"}))
//
//	    tester.Act(func() {
//	        greeting.Setter(0).Call("World")
//	    })
//
//	    if got := tester.TextContent(); got != "World" {
//	        t.Errorf("expected 'World', got %q", got)
//	    }
//	}
//
// Setter calls only mark the tree dirty. Act (or Pump) runs the build flush
// that makes the new state visible.
//
// # Finders
//
// Find locates elements by widget type, key, text, tag name, component name,
// prop, or predicate, and composes with Descendant and Ancestor:
//
//	span := tester.Find(hookedtest.ByTag("span"))
//	span.Props()["title"]
//
// # Snapshot Testing
//
// Capture and compare element tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/greeting.snapshot.yaml")
//
// Update snapshots with:
//
//	HOOKED_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import hookedtest "github.com/go-drift/hooked/pkg/testing"
package testing
