package testing

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/widgets"
)

// UpdateSnapshotsEnv names the environment variable that rewrites golden
// files instead of comparing against them.
const UpdateSnapshotsEnv = "HOOKED_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the element tree: widget types, labels, props, and text.
type Snapshot struct {
	Tree *WidgetNode `yaml:"tree"`
}

// WidgetNode represents one element in the serialized tree.
type WidgetNode struct {
	ID       string         `yaml:"id"`
	Type     string         `yaml:"type"`
	Name     string         `yaml:"name,omitempty"`
	Text     string         `yaml:"text,omitempty"`
	Props    map[string]any `yaml:"props,omitempty"`
	Children []*WidgetNode  `yaml:"children,omitempty"`
}

// CaptureSnapshot captures the current element tree.
func (t *WidgetTester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if t.root != nil {
		snap.Tree = captureNode(t.root, &typeCounter{})
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When HOOKED_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// String renders the snapshot as YAML.
func (s *Snapshot) String() string {
	data, err := marshalSnapshot(s)
	if err != nil {
		return fmt.Sprintf("<snapshot: %v>", err)
	}
	return string(data)
}

// --- Internal ---

// typeCounter assigns stable IDs like "Tag#0", "Tag#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureNode(e core.Element, counter *typeCounter) *WidgetNode {
	w := e.Widget()
	typeName := widgetTypeName(w)
	node := &WidgetNode{
		ID:   counter.next(typeName),
		Type: typeName,
	}

	switch typed := w.(type) {
	case widgets.Text:
		node.Text = typed.Content
	case widgets.Tag:
		node.Name = typed.Name
		node.Props = serializeProps(typed.Attributes())
	case widgets.Component:
		node.Name = typed.String()
		node.Props = serializeProps(typed.Props)
	case fmt.Stringer:
		node.Name = typed.String()
	}

	e.VisitChildren(func(child core.Element) bool {
		node.Children = append(node.Children, captureNode(child, counter))
		return true
	})
	return node
}

func widgetTypeName(w core.Widget) string {
	t := reflect.TypeOf(w)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	// Generic instantiations carry their type arguments in the name.
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	// Capitalize first letter so unexported widget types read like the
	// exported ones.
	if len(name) > 0 {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name
}

func serializeProps(props core.Props) map[string]any {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = serializeValue(reflect.ValueOf(v))
	}
	return out
}

// serializeValue turns a prop value into plain YAML data. Behaviour such as
// functions and setters is rendered as a "<type>" placeholder.
func serializeValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return round2(v.Float())
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return serializeValue(v.Elem())
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return placeholder(v)
		}
		m := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = serializeValue(iter.Value())
		}
		return m
	case reflect.Slice, reflect.Array:
		list := make([]any, v.Len())
		for i := range list {
			list[i] = serializeValue(v.Index(i))
		}
		return list
	default:
		return placeholder(v)
	}
}

func placeholder(v reflect.Value) string {
	return "<" + v.Type().String() + ">"
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot YAML: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := range maxLen {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
