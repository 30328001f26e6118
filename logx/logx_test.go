package logx

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_logx01(tst *testing.T) {

	chk.PrintTitle("logx01. Discard and Gosl both satisfy Logger without panicking")

	var loggers = []Logger{Discard{}, Gosl{}}
	for _, l := range loggers {
		l.Warnf("warning %d", 1)
		l.Debugf("debug %s", "trace")
		l.Errorf("error: %v", "boom")
	}
}
