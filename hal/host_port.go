//go:build !tinygo

package hal

import "ember/kernel"

// HostPort implements kernel.Port on goroutines. Each thread context is a
// goroutine parked on a one-slot gate channel; exactly one gate holds the
// run token at a time, so at most one thread executes, matching the
// single-core model. Involuntary preemption cannot interrupt running Go
// code: wakeups initiated from simulated interrupt context take effect at
// the running thread's next kernel entry.
type HostPort struct{}

type hostContext struct {
	gate chan struct{}
}

// NewContext parks a fresh goroutine until its first dispatch, then runs
// entry on it.
func (HostPort) NewContext(entry func()) kernel.Context {
	c := &hostContext{gate: make(chan struct{}, 1)}
	go func() {
		<-c.gate
		entry()
	}()
	return c
}

// Adopt returns a context for the calling goroutine.
func (HostPort) Adopt() kernel.Context {
	return &hostContext{gate: make(chan struct{}, 1)}
}

// Swap hands the run token to the target and parks the caller until it is
// dispatched again.
func (HostPort) Swap(from, to kernel.Context) {
	to.(*hostContext).gate <- struct{}{}
	<-from.(*hostContext).gate
}

// Handoff hands the run token to the target; the calling context is never
// dispatched again.
func (HostPort) Handoff(to kernel.Context) {
	to.(*hostContext).gate <- struct{}{}
}
