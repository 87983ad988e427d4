package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/widgets"
)

func TestCaptureSnapshot_TreeStructure(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(counter{initial: 4})

	snap := tester.CaptureSnapshot()
	root := snap.Tree
	if root == nil {
		t.Fatal("expected tree root")
	}
	if root.ID != "Counter#0" {
		t.Errorf("expected root id Counter#0, got %q", root.ID)
	}
	div := root.Children[0]
	if div.Type != "Tag" || div.Name != "div" {
		t.Errorf("expected div Tag, got %s %q", div.Type, div.Name)
	}
	span := div.Children[0]
	if span.ID != "Tag#1" {
		t.Errorf("expected span id Tag#1, got %q", span.ID)
	}
	if _, ok := span.Props[widgets.ChildrenProp]; ok {
		t.Error("content should not be serialized as a prop")
	}
	if span.Children[0].Text != "4" {
		t.Errorf("expected text '4', got %q", span.Children[0].Text)
	}
}

func TestCaptureSnapshot_Placeholders(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Component{
		Name: "Button",
		Props: core.Props{
			"label":   "Go",
			"onClick": func() {},
			"sizes":   []int{1, 2},
		},
		Render: func(props core.Props) core.Widget {
			return widgets.TextOf(props["label"])
		},
	})

	props := tester.CaptureSnapshot().Tree.Props
	if props["label"] != "Go" {
		t.Errorf("expected label 'Go', got %v", props["label"])
	}
	if props["onClick"] != "<func()>" {
		t.Errorf("expected func placeholder, got %v", props["onClick"])
	}
	sizes, ok := props["sizes"].([]any)
	if !ok || len(sizes) != 2 {
		t.Errorf("expected 2 sizes, got %v", props["sizes"])
	}
}

func TestSnapshot_String(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.Text{Content: "hello"})

	out := tester.CaptureSnapshot().String()
	if !strings.Contains(out, "text: hello") {
		t.Errorf("expected YAML text entry, got:\n%s", out)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(counter{initial: 1})

	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	tester.PumpWidget(counter{initial: 1})
	a := tester.CaptureSnapshot()

	tester.PumpWidget(counter{initial: 2})
	b := tester.CaptureSnapshot()

	diff := a.Diff(b)
	if diff == "" {
		t.Fatal("expected diff for different snapshots")
	}
	if !strings.Contains(diff, "text:") {
		t.Errorf("expected text line in diff, got:\n%s", diff)
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(counter{initial: 8})

	snap := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "testdata", "counter.snapshot.yaml")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// MatchesFile should pass now
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(counter{initial: 0})
	snap := tester.CaptureSnapshot()

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.yaml")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	tester := NewWidgetTesterWithT(t)

	tester.PumpWidget(counter{initial: 1})
	first := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "snap.yaml")
	if err := first.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	tester.PumpWidget(counter{initial: 999})
	second := tester.CaptureSnapshot()

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(counter{initial: 6})
	snap := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "update.snapshot.yaml")

	t.Setenv(UpdateSnapshotsEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
