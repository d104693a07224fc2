package kernel

// State is the lifecycle state of a thread.
type State uint8

const (
	StateWaitingStart State = iota // created, not yet started
	StateReady                     // eligible, queued by priority
	StateRunning                   // currently executing
	StateSuspended                 // parked on a Ref cell
	StateSleeping                  // parked on the tick list
	StateWaitingExit               // joined on another thread
	StateFinal                     // terminated, exit code readable
)

func (s State) String() string {
	switch s {
	case StateWaitingStart:
		return "wtstart"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateSleeping:
		return "sleeping"
	case StateWaitingExit:
		return "wtexit"
	case StateFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Prio is a scheduling priority. Higher values are more urgent.
type Prio uint8

const (
	NoPrio     Prio = 0   // not a valid thread priority
	IdlePrio   Prio = 1   // reserved for the idle thread
	LowPrio    Prio = 2   // lowest priority for application threads
	NormalPrio Prio = 64
	HighPrio   Prio = 127 // highest usable priority
)

// Msg is a wakeup message or thread exit code.
type Msg int32

const (
	MsgOK      Msg = 0
	MsgTimeout Msg = -1
	MsgReset   Msg = -2
)

// Func is a thread entry point. Returning from it is equivalent to calling
// Exit with the returned message.
type Func func(arg any) Msg

type tflags uint8

const (
	flagStatic    tflags = 1 << iota // work area is caller-owned, never reclaimed
	flagDynamic                      // work area owned by an Allocator
	flagTerminate                    // termination requested
)

// Thread is the control block for one thread. It lives inside a WorkArea and
// is owned by the kernel from creation until the last reference is dropped.
// All mutable fields are protected by the kernel lock.
type Thread struct {
	name     string
	state    State
	prio     Prio // effective priority, inheritance included
	realPrio Prio // own priority, ignoring inheritance boosts
	flags    tflags
	preempt  uint32 // remaining round-robin quantum, in ticks
	u        Msg    // wakeup message while blocked, exit code once final
	refs     int32  // outstanding handles, meaningful for dynamic threads

	waiting fifo // threads joined on this one, drained at exit

	wa     *WorkArea
	origin Allocator // reclaim target for dynamic threads
	ctx    Context   // port-specific execution context

	deadline Systime // sleep expiry, valid while on the sleep list
	next     *Thread // ready queue, sleep list or waiting list linkage

	regNext *Thread
	regPrev *Thread

	k *Kernel
}

// Name returns the thread name. Names are fixed at creation.
func (tp *Thread) Name() string { return tp.name }

// State returns the current lifecycle state.
// Must not be called with the kernel locked.
func (tp *Thread) State() State {
	tp.k.mu.Lock()
	s := tp.state
	tp.k.mu.Unlock()
	return s
}

// Priority returns the effective scheduling priority.
// Must not be called with the kernel locked.
func (tp *Thread) Priority() Prio {
	tp.k.mu.Lock()
	p := tp.prio
	tp.k.mu.Unlock()
	return p
}

// BasePriority returns the thread's own priority, ignoring any active
// inheritance boost. Must not be called with the kernel locked.
func (tp *Thread) BasePriority() Prio {
	tp.k.mu.Lock()
	p := tp.realPrio
	tp.k.mu.Unlock()
	return p
}

// ExitCode returns the exit code and whether the thread has terminated.
// Must not be called with the kernel locked.
func (tp *Thread) ExitCode() (Msg, bool) {
	tp.k.mu.Lock()
	code, ok := tp.u, tp.state == StateFinal
	tp.k.mu.Unlock()
	if !ok {
		return 0, false
	}
	return code, true
}

// TerminateRequested reports whether Terminate has been called on the thread.
// Must not be called with the kernel locked.
func (tp *Thread) TerminateRequested() bool {
	tp.k.mu.Lock()
	b := tp.flags&flagTerminate != 0
	tp.k.mu.Unlock()
	return b
}

// RefCount returns the number of outstanding handles.
// Must not be called with the kernel locked.
func (tp *Thread) RefCount() int32 {
	tp.k.mu.Lock()
	n := tp.refs
	tp.k.mu.Unlock()
	return n
}

// StackBounds returns the stack region reserved by the thread's work area.
func (tp *Thread) StackBounds() []byte { return tp.wa.stack }

// setExitCode stores the exit code. Write-once: the thread must not already
// be final.
func (tp *Thread) setExitCode(code Msg) {
	chk(tp.state != StateFinal, "exit code already set")
	tp.u = code
}

// fifo is an intrusive first-in-first-out list threaded through Thread.next.
type fifo struct {
	head *Thread
	tail *Thread
}

func (q *fifo) empty() bool { return q.head == nil }

func (q *fifo) push(tp *Thread) {
	tp.next = nil
	if q.tail == nil {
		q.head = tp
	} else {
		q.tail.next = tp
	}
	q.tail = tp
}

func (q *fifo) pop() *Thread {
	tp := q.head
	if tp == nil {
		return nil
	}
	q.head = tp.next
	if q.head == nil {
		q.tail = nil
	}
	tp.next = nil
	return tp
}
