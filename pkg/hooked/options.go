package hooked

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/hooked/pkg/core"
)

const (
	// DefaultDisplayName labels bound widgets when Options.DisplayName is empty.
	DefaultDisplayName = "HookedComponent"
	// DefaultSettersProp is the prop that carries the setters container.
	DefaultSettersProp = "__setters"
	// DefaultAsyncProp is the reserved deferred-marker key.
	DefaultAsyncProp = "__async"
)

// Options configures a binding. The zero value is valid.
type Options struct {
	// Initial is the state installed on every mount. Nil means no state.
	Initial core.Props `yaml:"initial"`
	// Props are defaults merged under the props supplied at render time.
	Props core.Props `yaml:"props"`
	// DisplayName labels the bound widget in diagnostics.
	DisplayName string `yaml:"displayName"`
	// SettersProp is the key the setters container is attached under.
	SettersProp string `yaml:"settersProp"`
	// OmitSetters disables attaching the setters container.
	OmitSetters bool `yaml:"omitSetters"`
	// AsyncProp is the deferred-marker key.
	AsyncProp string `yaml:"asyncProp"`
}

func (o Options) withDefaults() Options {
	if o.DisplayName == "" {
		o.DisplayName = DefaultDisplayName
	}
	if o.SettersProp == "" {
		o.SettersProp = DefaultSettersProp
	}
	if o.AsyncProp == "" {
		o.AsyncProp = DefaultAsyncProp
	}
	return o
}

// OptionsFromMap decodes a loosely typed option mapping, such as one read
// from a scenario file. Unknown keys are ignored.
func OptionsFromMap(m map[string]any) (Options, error) {
	var opts Options
	if len(m) == 0 {
		return opts, nil
	}
	var node yaml.Node
	if err := node.Encode(m); err != nil {
		return opts, fmt.Errorf("encode options: %w", err)
	}
	if err := node.Decode(&opts); err != nil {
		return opts, fmt.Errorf("decode options: %w", err)
	}
	return opts, nil
}
