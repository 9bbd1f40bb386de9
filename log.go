package golps

// Logger receives progress messages from the solver: phase transitions,
// pivots and terminal states. *log.Logger satisfies it.
type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}
