// Package errors provides structured error handling for hooked bindings and
// the widget tree that hosts them.
package errors

import (
	"fmt"
	"reflect"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSetter indicates an error returned by an author-defined setter.
	KindSetter
	// KindType indicates a setter result that is neither a mapping nor nil.
	KindType
	// KindDeferred indicates a rejected deferred completion.
	KindDeferred
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBuild indicates a build-time widget error.
	KindBuild
)

func (k ErrorKind) String() string {
	switch k {
	case KindSetter:
		return "setter"
	case KindType:
		return "type"
	case KindDeferred:
		return "deferred"
	case KindPanic:
		return "panic"
	case KindBuild:
		return "build"
	default:
		return "unknown"
	}
}

// BindError represents a failure while running a bound setter.
type BindError struct {
	// Op is the operation that failed (e.g., "hooked.Setter.Call").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Binding is the id of the binding instance, if known.
	Binding string
	// Setter names the setter that failed: a position ("#0") or a name.
	Setter string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindError) Error() string {
	if e.Setter != "" {
		return fmt.Sprintf("%s [%s] setter=%s: %v", e.Op, e.Kind, e.Setter, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// TypeError reports a setter result of an unsupported shape. Setters may
// only produce a mapping (replace state) or nil (clear state).
type TypeError struct {
	// Got is the type name of the offending value.
	Got string
}

// NewTypeError builds a TypeError describing v.
func NewTypeError(v any) *TypeError {
	return &TypeError{Got: TypeName(v)}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("Expected Object but got %s instead.", e.Got)
}

// TypeName returns a short, human-readable name for the dynamic type of v.
func TypeName(v any) string {
	if v == nil {
		return "Undefined"
	}
	t := reflect.TypeOf(v)
	switch t.Kind() {
	case reflect.String:
		return "String"
	case reflect.Bool:
		return "Boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "Number"
	case reflect.Slice, reflect.Array:
		return "Array"
	case reflect.Func:
		return "Function"
	case reflect.Map:
		return "Map"
	}
	return t.String()
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.FlushBuild").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildError represents a failure during widget build.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, StatefulElement, etc.).
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by bindings and the widget tree.
type ErrorHandler interface {
	// HandleError is called when a setter call fails.
	HandleError(err *BindError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}
