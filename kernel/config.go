package kernel

// Tracer observes scheduler events. Implementations run under the kernel
// lock: they must be fast, must not block and must not call back into the
// kernel.
type Tracer interface {
	// ContextSwitch fires when the processor moves between two threads.
	ContextSwitch(from, to string)
	// Ready fires when a thread enters the ready queue.
	Ready(name string)
	// Exit fires when a thread terminates.
	Exit(name string, code Msg)
}

// Config assembles a kernel from its capabilities. The zero value of each
// optional field means "enabled with defaults"; only the Port is required.
type Config struct {
	// Port supplies the context-switch primitive.
	Port Port

	// Quantum is the round-robin time slice in ticks for equal-priority
	// threads. Zero disables time slicing: equal-priority threads rotate
	// only on voluntary yields and blocking calls.
	Quantum uint32

	// NoInheritance collapses the base/effective priority pair: SetPriority
	// overwrites the effective priority directly and the boost operations
	// become contract violations.
	NoInheritance bool

	// NoRegistry skips registry bookkeeping for all threads.
	NoRegistry bool

	// OnInit runs under the kernel lock after a control block is
	// initialized.
	OnInit func(*Thread)

	// OnExit runs under the kernel lock at the start of the exit path,
	// before joiners are released.
	OnExit func(*Thread)

	// OnIdle runs in the idle thread between yields. Defaults to
	// runtime.Gosched on the host port.
	OnIdle func()

	// Tracer receives scheduler events, or nil for none.
	Tracer Tracer
}
