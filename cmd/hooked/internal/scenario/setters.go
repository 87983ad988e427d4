package scenario

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/hooked"
)

// Built-in setter kinds.
const (
	// KindSet stores its first argument as the new state.
	KindSet = "set"
	// KindMerge merges its first argument into the current state.
	KindMerge = "merge"
	// KindField merges {field: arg} into the current state.
	KindField = "field"
	// KindClear clears the state.
	KindClear = "clear"
	// KindAsync stores {field: arg} with the deferred marker set.
	KindAsync = "async"
)

var kinds = map[string]bool{
	KindSet:   true,
	KindMerge: true,
	KindField: true,
	KindClear: true,
	KindAsync: true,
}

// Declaration builds the setter declaration and returns the kind of each
// setter, keyed by the name a step uses to call it.
func (s *Scenario) Declaration() (hooked.Setters, map[string]string, error) {
	opts, err := s.BindingOptions()
	if err != nil {
		return hooked.None(), nil, err
	}
	asyncProp := opts.AsyncProp
	if asyncProp == "" {
		asyncProp = hooked.DefaultAsyncProp
	}
	field := s.TextField()

	switch s.Setters.Kind {
	case 0:
		return hooked.None(), map[string]string{"#0": KindSet}, nil

	case yaml.ScalarNode:
		if s.Setters.Tag == "!!null" {
			return hooked.None(), map[string]string{"#0": KindSet}, nil
		}
		var kind string
		if err := s.Setters.Decode(&kind); err != nil {
			return hooked.None(), nil, fmt.Errorf("setters: %w", err)
		}
		fn, err := builtin(SetterSpec{Kind: kind}, field, asyncProp)
		if err != nil {
			return hooked.None(), nil, fmt.Errorf("setters: %w", err)
		}
		return hooked.Single(fn), map[string]string{"#0": kind}, nil

	case yaml.SequenceNode:
		var specs []SetterSpec
		if err := s.Setters.Decode(&specs); err != nil {
			return hooked.None(), nil, fmt.Errorf("setters: %w", err)
		}
		fns := make([]hooked.SetterFunc, len(specs))
		byName := make(map[string]string, len(specs))
		for i, spec := range specs {
			if fns[i], err = builtin(spec, field, asyncProp); err != nil {
				return hooked.None(), nil, fmt.Errorf("setters[%d]: %w", i, err)
			}
			byName[fmt.Sprintf("#%d", i)] = spec.Kind
		}
		return hooked.List(fns...), byName, nil

	case yaml.MappingNode:
		var specs map[string]SetterSpec
		if err := s.Setters.Decode(&specs); err != nil {
			return hooked.None(), nil, fmt.Errorf("setters: %w", err)
		}
		names := make([]string, 0, len(specs))
		for name := range specs {
			names = append(names, name)
		}
		sort.Strings(names)

		fns := make(map[string]hooked.SetterFunc, len(specs))
		byName := make(map[string]string, len(specs))
		for _, name := range names {
			spec := specs[name]
			if fns[name], err = builtin(spec, field, asyncProp); err != nil {
				return hooked.None(), nil, fmt.Errorf("setters.%s: %w", name, err)
			}
			byName[name] = spec.Kind
		}
		return hooked.Named(fns), byName, nil
	}
	return hooked.None(), nil, fmt.Errorf("setters: unsupported YAML node at line %d", s.Setters.Line)
}

// builtin returns the setter for spec. Field defaults to the target's text
// field.
func builtin(spec SetterSpec, field, asyncProp string) (hooked.SetterFunc, error) {
	if !kinds[spec.Kind] {
		return nil, fmt.Errorf("unknown setter kind %q", spec.Kind)
	}
	if spec.Field != "" {
		field = spec.Field
	}

	switch spec.Kind {
	case KindSet:
		return func(args ...any) any {
			return arg(args)
		}, nil
	case KindMerge:
		return func(args ...any) any {
			patch, ok := core.PropsOf(normalize(arg(args)))
			if !ok {
				return arg(args)
			}
			return hooked.Transform(func(c hooked.Current) any {
				return core.Merge(c.HookProps, patch)
			})
		}, nil
	case KindField:
		return func(args ...any) any {
			value := arg(args)
			return hooked.Transform(func(c hooked.Current) any {
				return core.Merge(c.HookProps, core.Props{field: value})
			})
		}, nil
	case KindClear:
		return func(args ...any) any {
			return nil
		}, nil
	default:
		return func(args ...any) any {
			return core.Props{field: arg(args), asyncProp: true}
		}, nil
	}
}

func arg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return normalize(args[0])
}

// normalize converts YAML-decoded mappings to core.Props.
func normalize(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(core.Props, len(typed))
		for k, val := range typed {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}
