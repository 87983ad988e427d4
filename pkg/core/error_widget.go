package core

import (
	"sync"

	"github.com/go-drift/hooked/pkg/errors"
)

// ErrorWidgetBuilder creates a fallback widget when a widget build fails.
type ErrorWidgetBuilder func(err *errors.BuildError) Widget

var (
	errorWidgetBuilder ErrorWidgetBuilder
	errorBuilderMu     sync.RWMutex
)

// SetErrorWidgetBuilder configures the global error widget builder.
// Pass nil to render nothing in place of a failed build.
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) {
	errorBuilderMu.Lock()
	defer errorBuilderMu.Unlock()
	errorWidgetBuilder = builder
}

// GetErrorWidgetBuilder returns the current error widget builder, or nil.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	errorBuilderMu.RLock()
	defer errorBuilderMu.RUnlock()
	return errorWidgetBuilder
}
