// Package logx defines the diagnostic-logging seam used by every stage of
// the tau-p table builder. The actual sink (a simulation log file, a
// structured-logging backend) is an embedding application's concern; this
// package only provides the interface and two trivial implementations.
package logx

import "github.com/cpmech/gosl/io"

// Logger receives warnings and debug trace from the builder. Warnf is used
// for the non-fatal conditions spec.md §7 names (CausticBracketFailed,
// UnknownPhaseCode); Debugf for optional trace; Errorf immediately
// precedes a fatal return in the few call sites that log before
// propagating an error.
type Logger interface {
	Warnf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Gosl logs to the console using gosl/io's colored Pf* family, the same
// helpers the teacher uses for its own diagnostic output (io.Pfyel for
// warnings, io.Pfred for errors, io.Pf for plain trace).
type Gosl struct{}

func (Gosl) Warnf(format string, args ...interface{}) {
	io.Pfyel("warn: "+format+"\n", args...)
}

func (Gosl) Debugf(format string, args ...interface{}) {
	io.Pf(format+"\n", args...)
}

func (Gosl) Errorf(format string, args ...interface{}) {
	io.Pfred("error: "+format+"\n", args...)
}

// Discard drops every message. Useful for tests and for library callers
// who manage their own logging.
type Discard struct{}

func (Discard) Warnf(string, ...interface{})  {}
func (Discard) Debugf(string, ...interface{}) {}
func (Discard) Errorf(string, ...interface{}) {}
