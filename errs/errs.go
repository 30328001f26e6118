// Package errs implements the exit-code taxonomy of spec.md §6/§7. Every
// fatal condition in the builder is constructed as an *E carrying a Kind;
// an embedding CLI maps Kind to a process exit code without this module
// owning os.Exit.
package errs

import (
	"github.com/cpmech/gosl/io"
)

// Kind is one exit-code category from spec.md §6.
type Kind int

const (
	// Success is never returned as an error; it completes the
	// enumeration for callers that want to map every Kind to an exit
	// code, including the non-error case.
	Success Kind = iota
	BadModelRead
	BadModelFile
	BadPhaseList
	BadTauInterval
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "SUCCESS"
	case BadModelRead:
		return "BAD_MODEL_READ"
	case BadModelFile:
		return "BAD_MODEL_FILE"
	case BadPhaseList:
		return "BAD_PHASE_LIST"
	case BadTauInterval:
		return "BAD_TAU_INTERVAL"
	default:
		return "UNKNOWN"
	}
}

// E is a fatal builder error tagged with its exit-code Kind.
type E struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *E) Error() string {
	if e.Err != nil {
		return io.Sf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return io.Sf("%s: %s", e.Kind, e.Msg)
}

func (e *E) Unwrap() error { return e.Err }

// New builds an *E with a formatted message and no wrapped cause.
func New(kind Kind, format string, args ...interface{}) *E {
	return &E{Kind: kind, Msg: io.Sf(format, args...)}
}

// Wrap builds an *E around an existing error, preserving it for
// errors.Unwrap/errors.Is.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *E {
	return &E{Kind: kind, Msg: io.Sf(format, args...), Err: cause}
}
