package lamportsig

import goLog "log"

// Logger is the injectable logging sink for this package, ported from the
// teacher's misc.go. By default nothing is logged; call EnableLogging or
// SetLogger to turn it on. Logging is sparse and never sits in the hot
// path of Sign/Verify — only key generation progress for large
// capacities.
type Logger interface {
	Logf(format string, a ...interface{})
}

type dummyLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

type stdlibLogger struct{}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

var log Logger = &dummyLogger{}

// EnableLogging directs this package's log output to the standard log
// package. For more control, use SetLogger.
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// SetLogger installs logger as this package's logging sink. Passing nil
// disables logging.
func SetLogger(logger Logger) {
	if logger == nil {
		log = &dummyLogger{}
		return
	}
	log = logger
}
