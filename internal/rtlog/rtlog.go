// Package rtlog is the interpreter's diagnostic logging seam: a thin
// wrapper around juju/loggo so lex/parse/eval milestones log through
// one named logger instead of the standard library's bare log package.
package rtlog

import "github.com/juju/loggo"

var logger = loggo.GetLogger("basiclang")

// Logger returns the package-wide basiclang logger. Callers configure
// its level through loggo's own registry (loggo.ConfigureLoggers) —
// this package does not set a level itself, so by default it inherits
// loggo's root configuration (WARNING).
func Logger() loggo.Logger {
	return logger
}
