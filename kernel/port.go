package kernel

// Context is the port-specific saved execution state of one thread. The
// kernel stores it in the control block and hands it back to the port at
// every switch; it never inspects it.
type Context any

// Port is the context-switch primitive the kernel consumes. All three
// methods are invoked with the kernel lock held; lock ownership travels
// with the run token, so the side that gets dispatched continues inside
// its own suspended kernel call and eventually releases the lock.
type Port interface {
	// NewContext prepares an execution context so that its first dispatch
	// runs entry.
	NewContext(entry func()) Context

	// Adopt returns a context for the calling flow of control, used to turn
	// the bootstrap caller into a kernel thread.
	Adopt() Context

	// Swap suspends from and dispatches to. Returns when from is
	// dispatched again.
	Swap(from, to Context)

	// Handoff dispatches to without ever resuming the caller. Used on the
	// exit path.
	Handoff(to Context)
}
