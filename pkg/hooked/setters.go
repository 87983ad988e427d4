package hooked

import (
	"github.com/go-drift/hooked/pkg/core"
)

// Current is a snapshot of a binding: its state (HookProps) and the props it
// was last rendered with. Both maps are copies; mutating them has no effect.
type Current struct {
	HookProps core.Props
	Props     core.Props
}

// Transform computes a value from the current snapshot. Passing a Transform
// as the first argument to a setter always evaluates it; it is never stored.
type Transform func(current Current) any

// SetterFunc is an author-defined setter. It receives the caller's
// arguments and returns one of:
//   - core.Props or map[string]any: the new state
//   - nil: clear the state
//   - a Transform (or func(Current) any / func(Current) core.Props):
//     evaluated against the current snapshot, and its result used instead
//   - an error: returned to the caller unchanged
type SetterFunc func(args ...any) any

// SettersKind identifies the shape of a setter declaration.
type SettersKind int

const (
	// SettersNone uses the identity setter.
	SettersNone SettersKind = iota
	// SettersSingle wraps one setter.
	SettersSingle
	// SettersList wraps an ordered list, exposed positionally.
	SettersList
	// SettersNamed wraps a name to setter mapping, exposed as one map.
	SettersNamed
)

func (k SettersKind) String() string {
	switch k {
	case SettersSingle:
		return "single"
	case SettersList:
		return "list"
	case SettersNamed:
		return "named"
	default:
		return "none"
	}
}

// Setters is a setter declaration. The zero value is None.
type Setters struct {
	kind   SettersKind
	single SetterFunc
	list   []SetterFunc
	named  map[string]SetterFunc
}

// None declares no setters; the binding exposes the identity setter, which
// stores its single argument as the new state.
func None() Setters {
	return Setters{}
}

// Single declares one setter. A nil fn is the same as None.
func Single(fn SetterFunc) Setters {
	if fn == nil {
		return None()
	}
	return Setters{kind: SettersSingle, single: fn}
}

// List declares an ordered list of setters. Nil entries use the identity
// setter.
func List(fns ...SetterFunc) Setters {
	return Setters{kind: SettersList, list: append([]SetterFunc(nil), fns...)}
}

// Named declares setters by name. Nil entries use the identity setter.
func Named(fns map[string]SetterFunc) Setters {
	named := make(map[string]SetterFunc, len(fns))
	for name, fn := range fns {
		named[name] = fn
	}
	return Setters{kind: SettersNamed, named: named}
}

// Kind returns the declaration shape.
func (s Setters) Kind() SettersKind {
	return s.kind
}

// Len returns how many raw setters the declaration holds (1 for None).
func (s Setters) Len() int {
	switch s.kind {
	case SettersList:
		return len(s.list)
	case SettersNamed:
		return len(s.named)
	default:
		return 1
	}
}

// asTransform reports whether v uses the transform calling convention.
func asTransform(v any) (Transform, bool) {
	switch fn := v.(type) {
	case Transform:
		return fn, fn != nil
	case func(Current) any:
		return fn, fn != nil
	case func(Current) core.Props:
		if fn == nil {
			return nil, false
		}
		return func(c Current) any { return fn(c) }, true
	case func(Current) map[string]any:
		if fn == nil {
			return nil, false
		}
		return func(c Current) any { return fn(c) }, true
	}
	return nil, false
}

// isAbsent reports whether v is the clear-state sentinel, including typed
// nil maps.
func isAbsent(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case core.Props:
		return typed == nil
	case map[string]any:
		return typed == nil
	}
	return false
}
