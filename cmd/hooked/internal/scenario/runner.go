package scenario

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/hooked"
	"github.com/go-drift/hooked/pkg/widgets"
)

var (
	// ErrNoPending is returned by resolve and reject steps when no setter
	// call is waiting on a deferred result.
	ErrNoPending = errors.New("no pending result to settle")
	// ErrUnknownSetter is returned when a step calls an undeclared setter.
	ErrUnknownSetter = errors.New("unknown setter")
)

// StepReport records the tree after one step.
type StepReport struct {
	Index   int
	Action  string
	Detail  string
	Text    string
	State   core.Props
	Mounted bool
	Pending bool
	// Value is the settled value of a resolve step.
	Value any
	Err   error
}

// Report is the outcome of a scenario run. Steps[0] is the initial mount.
type Report struct {
	Name    string
	Binding string
	Kind    hooked.SettersKind
	Steps   []StepReport
}

// Failed returns how many steps reported an error.
func (r *Report) Failed() int {
	n := 0
	for _, step := range r.Steps {
		if step.Err != nil {
			n++
		}
	}
	return n
}

type runner struct {
	scenario  *Scenario
	binding   *hooked.Binding
	kinds     map[string]string
	asyncProp string
	field     string
	owner     *core.BuildOwner
	root      core.Element
	props     core.Props
	pending   *hooked.Deferred
	log       *zap.Logger
}

// Run binds the scenario target, mounts it, and executes every step.
// Step failures are recorded in the report; Run only fails when the
// scenario cannot be set up.
func Run(ctx context.Context, s *Scenario) (*Report, error) {
	opts, err := s.BindingOptions()
	if err != nil {
		return nil, err
	}
	decl, kinds, err := s.Declaration()
	if err != nil {
		return nil, err
	}

	r := &runner{
		scenario:  s,
		kinds:     kinds,
		asyncProp: opts.AsyncProp,
		field:     s.TextField(),
		owner:     core.NewBuildOwner(),
		props:     s.Props,
		log:       hooked.Logger().Named("scenario").With(zap.String("scenario", s.Name)),
	}
	if r.asyncProp == "" {
		r.asyncProp = hooked.DefaultAsyncProp
	}
	r.binding = hooked.Bind(r.target(), decl, opts)
	defer r.unmount()

	report := &Report{
		Name:    s.Name,
		Binding: r.binding.ID(),
		Kind:    r.binding.Kind(),
	}
	r.mount()
	report.Steps = append(report.Steps, r.snapshot(0, "mount", "", nil))

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Steps = append(report.Steps, r.exec(ctx, i+1, step))
	}
	return report, nil
}

func (r *runner) target() hooked.Target {
	if r.scenario.Target.Tag != "" {
		return hooked.Tag(r.scenario.Target.Tag)
	}
	field := r.field
	return hooked.Component(r.scenario.Target.Component, func(props core.Props) core.Widget {
		return widgets.TextOf(props[field])
	})
}

func (r *runner) exec(ctx context.Context, index int, step Step) StepReport {
	action := step.Action()
	r.log.Debug("step", zap.Int("index", index), zap.String("action", action))

	switch action {
	case "mount":
		r.mount()
		return r.snapshot(index, action, "", nil)

	case "unmount":
		r.unmount()
		return r.snapshot(index, action, "", nil)

	case "render":
		r.props = step.Render
		if r.root != nil {
			r.root.Update(r.binding.Widget(r.props))
			r.owner.FlushBuild()
		}
		return r.snapshot(index, action, formatValue(step.Render), nil)

	case "resolve", "reject":
		value, err := r.settle(ctx, step)
		report := r.snapshot(index, action, r.settleDetail(step), err)
		report.Value = value
		return report

	default:
		name := step.Call
		if name == "" {
			name = "#0"
		}
		setter := r.setter(name)
		if setter == nil {
			return r.snapshot(index, action, name, fmt.Errorf("%w %q", ErrUnknownSetter, name))
		}

		var (
			result hooked.Result
			err    error
			detail string
		)
		if step.Append != nil {
			detail = fmt.Sprintf("%s(+%q)", name, *step.Append)
			result, err = setter.Call(r.appendTransform(r.kinds[name], *step.Append))
		} else {
			args := make([]any, len(step.Args))
			for i, a := range step.Args {
				args[i] = normalize(a)
			}
			detail = fmt.Sprintf("%s(%s)", name, formatArgs(args))
			result, err = setter.Call(args...)
		}
		if result.Pending() {
			r.pending = result.Deferred()
		}
		r.owner.FlushBuild()
		return r.snapshot(index, action, detail, err)
	}
}

func (r *runner) setter(name string) *hooked.Setter {
	if i, ok := strings.CutPrefix(name, "#"); ok {
		n, err := strconv.Atoi(i)
		if err != nil {
			return nil
		}
		return r.binding.Setter(n)
	}
	return r.binding.Named()[name]
}

// appendTransform appends suffix to the rendered text field. Field-shaped
// setters receive the new text; the others receive a state mapping.
func (r *runner) appendTransform(kind, suffix string) hooked.Transform {
	field := r.field
	return func(c hooked.Current) any {
		text := core.Merge(c.Props, c.HookProps).Text(field) + suffix
		switch kind {
		case KindField, KindAsync:
			return text
		case KindMerge:
			return core.Props{field: text}
		default:
			return core.Merge(c.HookProps, core.Props{field: text})
		}
	}
}

// settle settles the pending result through the completion stored in
// state, the same handle the rendered component receives.
func (r *runner) settle(ctx context.Context, step Step) (any, error) {
	if r.pending == nil {
		return nil, ErrNoPending
	}
	deferred := r.pending
	r.pending = nil

	completion, ok := r.binding.Current().HookProps[r.asyncProp].(hooked.Completion)
	if !ok {
		// State was replaced before settling; settle the handle directly.
		completion = deferred.Completion()
	}
	if step.resolves() {
		var value any
		if err := step.Resolve.Decode(&value); err != nil {
			return nil, fmt.Errorf("resolve value: %w", err)
		}
		completion.Resolve(normalize(value))
	} else {
		completion.Reject(errors.New(*step.Reject))
	}
	return deferred.Wait(ctx)
}

func (r *runner) settleDetail(step Step) string {
	if step.Reject != nil {
		return strconv.Quote(*step.Reject)
	}
	if step.resolves() {
		if step.Resolve.Kind == yaml.ScalarNode {
			return step.Resolve.Value
		}
		return "<" + step.Resolve.ShortTag() + ">"
	}
	return ""
}

func (r *runner) mount() {
	if r.root != nil {
		return
	}
	r.root = core.MountRoot(r.binding.Widget(r.props), r.owner)
	r.owner.FlushBuild()
}

func (r *runner) unmount() {
	if r.root == nil {
		return
	}
	r.root.Unmount()
	r.root = nil
}

func (r *runner) snapshot(index int, action, detail string, err error) StepReport {
	return StepReport{
		Index:   index,
		Action:  action,
		Detail:  detail,
		Text:    r.text(),
		State:   r.binding.Current().HookProps,
		Mounted: r.binding.Mounted(),
		Pending: r.pending != nil,
		Err:     err,
	}
}

func (r *runner) text() string {
	if r.root == nil {
		return ""
	}
	var b strings.Builder
	var walk func(core.Element)
	walk = func(e core.Element) {
		if t, ok := e.Widget().(widgets.Text); ok {
			b.WriteString(t.Content)
		}
		e.VisitChildren(func(child core.Element) bool {
			walk(child)
			return true
		})
	}
	walk(r.root)
	return b.String()
}
