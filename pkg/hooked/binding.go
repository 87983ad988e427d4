package hooked

import (
	"maps"
	"sort"

	"github.com/google/uuid"

	"github.com/go-drift/hooked/pkg/core"
)

// Binding ties one target to one state cell and the setters that update it.
// Create it once and render Widget wherever the target should appear; the
// state cell lives as long as the mounted widget.
type Binding struct {
	id      string
	target  Target
	decl    Setters
	opts    Options
	engine  *engine
	setters []*Setter
	named   map[string]*Setter
}

// Bind normalizes decl against target and returns the binding.
func Bind(target Target, decl Setters, opts Options) *Binding {
	opts = opts.withDefaults()
	b := &Binding{
		id:     uuid.NewString(),
		target: target,
		decl:   decl,
		opts:   opts,
	}
	b.engine = newEngine(b.id, target, opts)

	switch decl.kind {
	case SettersList:
		b.setters = make([]*Setter, len(decl.list))
		for i, fn := range decl.list {
			b.setters[i] = wrapSetter(b.engine, fn, positionLabel(i))
		}
	case SettersNamed:
		b.named = make(map[string]*Setter, len(decl.named))
		for name, fn := range decl.named {
			b.named[name] = wrapSetter(b.engine, fn, name)
		}
	case SettersSingle:
		b.setters = []*Setter{wrapSetter(b.engine, decl.single, positionLabel(0))}
	case SettersNone:
		b.setters = []*Setter{wrapSetter(b.engine, nil, positionLabel(0))}
	}
	return b
}

// ID returns the binding's unique id, used in logs and errors.
func (b *Binding) ID() string {
	return b.id
}

// DisplayName returns the diagnostic label of the bound widget.
func (b *Binding) DisplayName() string {
	return b.opts.DisplayName
}

// Target returns the bound target.
func (b *Binding) Target() Target {
	return b.target
}

// Kind returns the shape of the setter declaration.
func (b *Binding) Kind() SettersKind {
	return b.decl.kind
}

// Widget returns the renderable unit configured with props. Props supplied
// here override Options.Props; state overrides both.
func (b *Binding) Widget(props core.Props) core.Widget {
	return hookedWidget{binding: b, props: props}
}

// Setters returns the positional setters. It is empty for Named
// declarations.
func (b *Binding) Setters() []*Setter {
	return b.setters
}

// Setter returns the positional setter at i, or nil if out of range.
func (b *Binding) Setter(i int) *Setter {
	if i < 0 || i >= len(b.setters) {
		return nil
	}
	return b.setters[i]
}

// Named returns a copy of the named setters. It is nil unless the
// declaration was Named.
func (b *Binding) Named() map[string]*Setter {
	return maps.Clone(b.named)
}

// Names returns the declared setter names in sorted order.
func (b *Binding) Names() []string {
	names := make([]string, 0, len(b.named))
	for name := range b.named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Current returns a snapshot of the state and the last rendered props.
func (b *Binding) Current() Current {
	return b.engine.current()
}

// Mounted reports whether a widget for this binding is currently mounted.
func (b *Binding) Mounted() bool {
	return b.engine.cell != nil
}

// Exposed returns the binding as a flat tuple: the widget constructor, then
// either each positional setter or the single named map, then the snapshot
// accessor.
func (b *Binding) Exposed() []any {
	out := []any{b.Widget}
	if b.decl.kind == SettersNamed {
		out = append(out, b.Named())
	} else {
		for _, s := range b.setters {
			out = append(out, s)
		}
	}
	return append(out, b.Current)
}

// settersContainer is the value attached under Options.SettersProp.
func (b *Binding) settersContainer() any {
	if b.decl.kind == SettersNamed {
		return b.named
	}
	return b.setters
}

// renderProps assembles the final props for one render pass.
func (b *Binding) renderProps(supplied, state core.Props) core.Props {
	props := core.Merge(b.engine.capture(supplied), state)
	if !b.opts.OmitSetters && !b.target.IsPlain() {
		props[b.opts.SettersProp] = b.settersContainer()
	}
	return props
}

// hookedWidget is the renderable unit produced by a binding.
type hookedWidget struct {
	core.StatefulBase
	binding *Binding
	props   core.Props
}

func (w hookedWidget) CreateState() core.State {
	return &hookedState{binding: w.binding}
}

// Key keeps widgets of different bindings from sharing a mounted state.
func (w hookedWidget) Key() any {
	return w.binding.id
}

func (w hookedWidget) String() string {
	return w.binding.DisplayName()
}

// hookedState hosts the binding's state cell for one mount.
type hookedState struct {
	core.StateBase
	binding *Binding
	cell    *core.Managed[core.Props]
}

func (s *hookedState) InitState() {
	eng := s.binding.engine
	s.cell = core.NewManaged(s, eng.initialState())
	core.UseController(s, func() *attachment {
		return eng.attach(s.cell)
	})
}

func (s *hookedState) Build(ctx core.BuildContext) core.Widget {
	w := ctx.Widget().(hookedWidget)
	return s.binding.target.build(s.binding.renderProps(w.props, s.cell.Value()))
}
