// Package scenario loads and runs scripted binding scenarios for the hooked
// CLI. A scenario names a target, a setter declaration built from built-in
// setter kinds, binding options, and a list of steps.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hooked/pkg/core"
	"github.com/go-drift/hooked/pkg/hooked"
	"github.com/go-drift/hooked/pkg/widgets"
)

// SupportedMajor is the scenario format major version this build reads.
const SupportedMajor = "v1"

// Scenario is one scripted run, as read from a YAML file.
type Scenario struct {
	Version string         `yaml:"version"`
	Name    string         `yaml:"name"`
	Target  TargetSpec     `yaml:"target"`
	Options map[string]any `yaml:"options"`
	Props   core.Props     `yaml:"props"`
	// Setters is absent (None), a scalar kind (Single), a sequence of
	// setter specs (List), or a mapping of name to setter spec (Named).
	Setters yaml.Node `yaml:"setters"`
	Steps   []Step    `yaml:"steps"`
}

// TargetSpec selects the bound target. Exactly one of Component or Tag is set.
type TargetSpec struct {
	Component string `yaml:"component,omitempty"`
	Tag       string `yaml:"tag,omitempty"`
	// Field is the prop a component renders as its text. Tags always render
	// their "children" prop.
	Field string `yaml:"field,omitempty"`
}

// SetterSpec configures one built-in setter.
type SetterSpec struct {
	Kind  string `yaml:"kind"`
	Field string `yaml:"field,omitempty"`
}

// Step is one scripted action. Exactly one action field is set.
type Step struct {
	// Call names the setter to invoke: a declared name, or "#i" for a
	// positional setter. Empty means "#0".
	Call string `yaml:"call,omitempty"`
	Args []any  `yaml:"args,omitempty"`
	// Append calls the setter with a transform that appends to the
	// target field instead of passing Args.
	Append *string    `yaml:"append,omitempty"`
	Render core.Props `yaml:"render,omitempty"`
	// Resolve holds the raw value to resolve the pending result with. A
	// zero Kind means the key was absent.
	Resolve yaml.Node `yaml:"resolve,omitempty"`
	Reject  *string   `yaml:"reject,omitempty"`
	Mount   bool      `yaml:"mount,omitempty"`
	Unmount bool      `yaml:"unmount,omitempty"`
}

func (s Step) resolves() bool {
	return s.Resolve.Kind != 0
}

// Action names what the step does.
func (s Step) Action() string {
	switch {
	case s.Append != nil:
		return "append"
	case s.Render != nil:
		return "render"
	case s.resolves():
		return "resolve"
	case s.Reject != nil:
		return "reject"
	case s.Mount:
		return "mount"
	case s.Unmount:
		return "unmount"
	default:
		return "call"
	}
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Append != nil, s.Render != nil, s.resolves(), s.Reject != nil, s.Mount, s.Unmount} {
		if set {
			n++
		}
	}
	return n
}

// Load reads and validates a scenario file. A missing name defaults to the
// file name without its extension.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("scenario not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the version, target, setter declaration, and steps.
func (s *Scenario) Validate() error {
	if err := validateVersion(s.Version); err != nil {
		return err
	}

	component := strings.TrimSpace(s.Target.Component)
	tag := strings.TrimSpace(s.Target.Tag)
	switch {
	case component == "" && tag == "":
		return errors.New("target needs a component or a tag")
	case component != "" && tag != "":
		return errors.New("target cannot be both a component and a tag")
	}

	if _, err := s.BindingOptions(); err != nil {
		return err
	}
	if _, _, err := s.Declaration(); err != nil {
		return err
	}

	if len(s.Steps) == 0 {
		return errors.New("scenario has no steps")
	}
	for i, step := range s.Steps {
		if step.actions() > 1 {
			return fmt.Errorf("step %d: more than one action", i+1)
		}
		if step.Action() != "call" && step.Action() != "append" && (step.Call != "" || len(step.Args) > 0) {
			return fmt.Errorf("step %d: call and args only apply to call and append steps", i+1)
		}
	}
	return nil
}

func validateVersion(v string) error {
	if v == "" {
		return fmt.Errorf("missing version (supported: %s)", SupportedMajor)
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid version %q", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("unsupported scenario version %s (supported: %s)", v, SupportedMajor)
	}
	return nil
}

// BindingOptions decodes the scenario options into binding options.
func (s *Scenario) BindingOptions() (hooked.Options, error) {
	return optionMap(s.Options).decode()
}

// TextField returns the prop rendered as text by the target.
func (s *Scenario) TextField() string {
	if s.Target.Tag != "" {
		return widgets.ChildrenProp
	}
	if s.Target.Field == "" {
		return "message"
	}
	return s.Target.Field
}

type optionMap map[string]any

func (m optionMap) decode() (hooked.Options, error) {
	opts, err := hooked.OptionsFromMap(m)
	if err != nil {
		return opts, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}
