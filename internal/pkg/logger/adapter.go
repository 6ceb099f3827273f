package logger

import "coinboard/internal/app/port"

// slogAdapter реализует port.Logger поверх глобальных функций пакета logger.
// Every line carries the component attribute given at construction.
type slogAdapter struct {
	component string
}

// NewSlogAdapter создает port.Logger для компонента.
func NewSlogAdapter(component string) port.Logger {
	return &slogAdapter{component: component}
}

func (a *slogAdapter) with(args []any) []any {
	if a.component == "" {
		return args
	}
	return append([]any{"component", a.component}, args...)
}

func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, a.with(args)...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, a.with(args)...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, a.with(args)...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, a.with(args)...)
}
