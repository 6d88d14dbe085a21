package core

// Logger interface for tracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards all log output; tests use it to keep output quiet
type NopLogger struct{}

// Printf discards the message
func (NopLogger) Printf(format string, args ...interface{}) {}
