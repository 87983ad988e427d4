package errors

import (
	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that logs through a zap logger.
type LogHandler struct {
	// Logger receives the records. A nil Logger uses zap.L().
	Logger *zap.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.L()
}

// HandleError logs a BindError.
func (h *LogHandler) HandleError(err *BindError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Binding != "" {
		fields = append(fields, zap.String("binding", err.Binding))
	}
	if err.Setter != "" {
		fields = append(fields, zap.String("setter", err.Setter))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("hooked error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{zap.Any("value", err.Value)}
	if err.Op != "" {
		fields = append(fields, zap.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("hooked panic", fields...)
}

// HandleBuildError logs a BuildError.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("widget", err.Widget),
		zap.String("element", err.Element),
	}
	if err.Recovered != nil {
		fields = append(fields, zap.Any("recovered", err.Recovered))
	}
	if err.Err != nil {
		fields = append(fields, zap.Error(err.Err))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("hooked build error", fields...)
}
