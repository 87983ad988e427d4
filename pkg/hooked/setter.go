package hooked

import (
	stderrors "errors"
	"strconv"

	"github.com/go-drift/hooked/pkg/errors"
)

// Setter is a normalized setter: the callable exposed to callers whatever
// the shape of the declaration it came from.
//
// Setter is NOT thread-safe. Call it from the goroutine that pumps the tree.
type Setter struct {
	engine   *engine
	raw      SetterFunc
	identity bool
	label    string
}

func wrapSetter(e *engine, raw SetterFunc, label string) *Setter {
	return &Setter{
		engine:   e,
		raw:      raw,
		identity: raw == nil,
		label:    label,
	}
}

// Name returns the setter's position ("#0") or declared name.
func (s *Setter) Name() string {
	return s.label
}

// Call runs the setter.
//
// If args[0] is a Transform it is evaluated against the current snapshot and
// the raw setter is called with that single value. Otherwise an
// author-defined setter receives every argument and the identity setter
// receives args[0] only. If the setter returns a Transform it is evaluated
// against the snapshot too. The final value is merged into state.
func (s *Setter) Call(args ...any) (Result, error) {
	var value any
	if fn, ok := asTransform(first(args)); ok {
		value = s.invoke(fn(s.engine.current()))
	} else if s.identity {
		value = first(args)
	} else {
		value = s.raw(args...)
	}

	if fn, ok := asTransform(value); ok {
		value = fn(s.engine.current())
	}

	if err, ok := value.(error); ok {
		return Result{}, s.fail(errors.KindSetter, err)
	}

	result, err := s.engine.merge(value, s.label)
	if err != nil {
		return Result{}, s.fail(errors.KindType, err)
	}
	return result, nil
}

// Update runs the setter with a transform over the current snapshot. It is
// the explicit form of Call(fn).
func (s *Setter) Update(fn Transform) (Result, error) {
	if fn == nil {
		return s.Call()
	}
	return s.Call(fn)
}

// MustCall is like Call but panics on error. It suits event handlers whose
// setters cannot fail.
func (s *Setter) MustCall(args ...any) Result {
	result, err := s.Call(args...)
	if err != nil {
		panic(err)
	}
	return result
}

func (s *Setter) invoke(value any) any {
	if s.identity {
		return value
	}
	return s.raw(value)
}

func (s *Setter) fail(kind errors.ErrorKind, err error) error {
	var typeErr *errors.TypeError
	if kind == errors.KindSetter && stderrors.As(err, &typeErr) {
		kind = errors.KindType
	}
	wrapped := errors.Wrap("hooked.Setter.Call", kind, s.engine.id, s.label, err)
	errors.Report(wrapped)
	return wrapped
}

func first(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func positionLabel(i int) string {
	return "#" + strconv.Itoa(i)
}
