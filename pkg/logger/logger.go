// Package logger provides a process-wide logging facade that fans out to one
// or more backends. Before Init is called all logging functions are no-ops,
// so packages can log unconditionally even when running under go test.
package logger

// LoggerInstance is implemented by every logging backend.
type LoggerInstance interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

// Logger fans a log call out to every registered backend.
type Logger struct {
	instances []LoggerInstance
}

var singleton *Logger

func getSingleton() *Logger {
	return singleton
}

// Init installs the backends used by the package-level logging functions.
// Calling it again replaces the previous set.
func Init(instances ...LoggerInstance) {
	singleton = &Logger{
		instances: instances,
	}
}

// Log emits a message at the backend's default level.
func Log(message string, keyvals ...any) {
	logger := getSingleton()
	if logger == nil {
		return
	}

	for _, instance := range logger.instances {
		instance.Log(message)
	}
}

// Info emits a message at INFO level.
func Info(message string, keyvals ...any) {
	logger := getSingleton()
	if logger == nil {
		return
	}

	for _, instance := range logger.instances {
		instance.Info(message, keyvals...)
	}
}

// Warn emits a message at WARN level.
func Warn(message string, keyvals ...any) {
	logger := getSingleton()
	if logger == nil {
		return
	}

	for _, instance := range logger.instances {
		instance.Warn(message, keyvals...)
	}
}

// Error emits a message at ERROR level.
func Error(message string, keyvals ...any) {
	logger := getSingleton()
	if logger == nil {
		return
	}

	for _, instance := range logger.instances {
		instance.Error(message, keyvals...)
	}
}

// Debug emits a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	logger := getSingleton()
	if logger == nil {
		return
	}

	for _, instance := range logger.instances {
		instance.Debug(message, keyvals...)
	}
}

// Fatal emits a message at FATAL level. Backends are expected to exit the
// process, so anything after a Fatal call is unreachable in normal operation.
func Fatal(message string, keyvals ...any) {
	logger := getSingleton()
	if logger == nil {
		return
	}

	for _, instance := range logger.instances {
		instance.Fatal(message, keyvals...)
	}
}
