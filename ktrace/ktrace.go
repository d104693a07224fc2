// Package ktrace logs kernel scheduler events through phuslu/log. It is the
// host-side debugging aid for the thread core: context switches, ready
// transitions and exits become structured trace lines.
package ktrace

import (
	"github.com/phuslu/log"

	"ember/kernel"
)

// Tracer implements kernel.Tracer on a phuslu logger. Tracer methods run
// under the kernel lock, so the logger should use a non-blocking writer
// (an IOWriter or AsyncWriter) in anything but debugging sessions.
type Tracer struct {
	log log.Logger
}

// New builds a tracer writing to w at the given level.
func New(level log.Level, w log.Writer) *Tracer {
	return &Tracer{
		log: log.Logger{
			Level:   level,
			Writer:  w,
			Context: log.NewContext(nil).Str("module", "kernel").Value(),
		},
	}
}

func (t *Tracer) ContextSwitch(from, to string) {
	t.log.Trace().Str("from", from).Str("to", to).Msg("context switch")
}

func (t *Tracer) Ready(name string) {
	t.log.Trace().Str("thread", name).Msg("ready")
}

func (t *Tracer) Exit(name string, code kernel.Msg) {
	t.log.Debug().Str("thread", name).Int("code", int(code)).Msg("thread exit")
}
