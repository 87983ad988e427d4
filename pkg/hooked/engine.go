package hooked

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/errors"
)

// cell is the host's primitive state holder. core.Managed satisfies it.
type cell interface {
	Value() core.Props
	Set(core.Props)
}

// engine owns a binding's state. state mirrors the host cell and is
// updated synchronously on every merge, so several merges issued before the
// host rebuilds observe one another.
type engine struct {
	id        string
	plain     bool
	asyncProp string
	initial   core.Props
	defaults  core.Props
	log       *zap.Logger

	state core.Props
	props core.Props
	cell  cell
}

func newEngine(id string, target Target, opts Options) *engine {
	return &engine{
		id:        id,
		plain:     target.IsPlain(),
		asyncProp: opts.AsyncProp,
		initial:   opts.Initial,
		defaults:  opts.Props,
		log:       Logger().With(zap.String("binding", id)),
		state:     cloneState(opts.Initial),
		props:     core.Props{},
	}
}

// current returns copies of the mirror state and the current props.
func (e *engine) current() Current {
	return Current{
		HookProps: e.state.Clone(),
		Props:     e.props.Clone(),
	}
}

// initialState returns a fresh copy of the configured initial state.
func (e *engine) initialState() core.Props {
	return cloneState(e.initial)
}

// attach links a freshly mounted host cell and resets the mirror to it.
func (e *engine) attach(c cell) *attachment {
	e.cell = c
	e.state = c.Value()
	e.log.Debug("binding attached", zap.Bool("initial", e.state != nil))
	return &attachment{engine: e, cell: c}
}

// capture records the props for the current render pass.
func (e *engine) capture(supplied core.Props) core.Props {
	e.props = core.Merge(e.defaults, supplied)
	return e.props
}

// merge applies a resolved setter result.
func (e *engine) merge(result any, setter string) (Result, error) {
	if isAbsent(result) {
		e.set(nil)
		e.log.Debug("state cleared", zap.String("setter", setter))
		return Result{}, nil
	}

	props, ok := core.PropsOf(result)
	if !ok {
		return Result{}, errors.NewTypeError(result)
	}

	rest, marker := props.Without(e.asyncProp)
	if e.plain || !truthy(marker) {
		e.set(rest)
		e.log.Debug("state merged", zap.String("setter", setter), zap.Strings("keys", rest.Keys()))
		return Result{}, nil
	}

	deferred := newDeferred(e.id, setter)
	rest[e.asyncProp] = deferred.Completion()
	e.set(rest)
	e.log.Debug("state merged, pending", zap.String("setter", setter), zap.Strings("keys", rest.Keys()))
	return Result{deferred: deferred}, nil
}

func (e *engine) set(state core.Props) {
	e.state = state
	if e.cell != nil {
		e.cell.Set(state)
	}
}

// attachment detaches its cell from the engine when the host state is
// disposed. A later mount may already have replaced the cell.
type attachment struct {
	engine *engine
	cell   cell
}

func (a *attachment) Dispose() {
	if a.engine.cell == a.cell {
		a.engine.cell = nil
		a.engine.log.Debug("binding detached")
	}
}

func cloneState(p core.Props) core.Props {
	if p == nil {
		return nil
	}
	return p.Clone()
}

// truthy mirrors the loose truthiness used for the deferred marker: nil,
// false, zero numbers, and the empty string are false.
func truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return !rv.IsZero()
	}
	return true
}
