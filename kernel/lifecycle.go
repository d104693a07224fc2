package kernel

import "runtime"

// CreateI lays out a control block in the work area and initializes it to
// StateWaitingStart. The thread is not queued and does not run until
// started. Callable from locked or interrupt context.
func (k *Kernel) CreateI(wa *WorkArea, name string, prio Prio, fn Func, arg any) *Thread {
	k.checkClassI()
	chk(wa != nil && wa.Size() >= MinWorkAreaSize, "create: work area too small")
	chk(prio >= IdlePrio && prio <= HighPrio, "create: priority out of range")
	chk(fn != nil, "create: nil entry function")

	tp := &wa.thread
	*tp = Thread{
		name:     name,
		state:    StateWaitingStart,
		prio:     prio,
		realPrio: prio,
		flags:    flagStatic,
		preempt:  k.cfg.Quantum,
		refs:     1,
		wa:       wa,
		k:        k,
	}
	// The first dispatch lands here with the kernel lock held by the
	// switching side; finish that dispatch, run the thread function, and
	// treat a plain return as an explicit exit.
	tp.ctx = k.cfg.Port.NewContext(func() {
		k.Unlock()
		k.Exit(fn(arg))
	})
	if !k.cfg.NoRegistry {
		k.reg.insert(tp)
	}
	if k.cfg.OnInit != nil {
		k.cfg.OnInit(tp)
	}
	k.st.created++
	return tp
}

// Create is the normal-class variant of CreateI.
func (k *Kernel) Create(wa *WorkArea, name string, prio Prio, fn Func, arg any) *Thread {
	k.Lock()
	tp := k.CreateI(wa, name, prio, fn, arg)
	k.Unlock()
	return tp
}

// CreateDynamic creates a thread in a work area obtained from the allocator.
// The area returns to the allocator when the reference count reaches zero
// after termination. Allocator exhaustion is the only runtime failure.
func (k *Kernel) CreateDynamic(alloc Allocator, size int, prio Prio, name string, fn Func, arg any) (*Thread, error) {
	chk(alloc != nil, "create: nil allocator")
	wa := alloc.Allocate(size)
	if wa == nil {
		return nil, ErrOutOfMemory
	}
	k.Lock()
	tp := k.CreateI(wa, name, prio, fn, arg)
	tp.flags = flagDynamic
	tp.origin = alloc
	k.Unlock()
	return tp, nil
}

// StartI makes a created thread ready, queued by priority. Starting a thread
// twice is a contract violation. No reschedule: interrupt context cannot
// yield, so the thread runs no earlier than the next scheduling point.
func (k *Kernel) StartI(tp *Thread) *Thread {
	k.checkClassI()
	chk(tp != nil, "start: nil thread")
	chk(tp.state == StateWaitingStart, "start: thread already started")
	tp.u = MsgOK
	return k.ReadyI(tp)
}

// Start makes a created thread ready and reschedules: if it outranks the
// caller it runs immediately.
func (k *Kernel) Start(tp *Thread) *Thread {
	k.Lock()
	chk(tp != nil, "start: nil thread")
	chk(tp.state == StateWaitingStart, "start: thread already started")
	k.WakeupS(tp, MsgOK)
	k.Unlock()
	return tp
}

// TerminateI sets the termination-request flag on tp. Idempotent.
func (k *Kernel) TerminateI(tp *Thread) {
	k.checkClassI()
	chk(tp != nil, "terminate: nil thread")
	tp.flags |= flagTerminate
}

// Terminate requests that tp terminate. The target must poll
// ShouldTerminate and exit cleanly; nothing is forced.
func (k *Kernel) Terminate(tp *Thread) {
	k.Lock()
	k.TerminateI(tp)
	k.Unlock()
}

// ShouldTerminate reports whether termination was requested for the running
// thread.
func (k *Kernel) ShouldTerminate() bool {
	k.Lock()
	b := k.current.flags&flagTerminate != 0
	k.Unlock()
	return b
}

// ExitS terminates the running thread with the given exit code: the code is
// stored (write-once), the exit hook runs, every joiner is readied, a static
// thread leaves the registry, and the thread enters StateFinal. The call
// never returns; deferred functions of the exiting thread run afterwards,
// outside the kernel lock.
func (k *Kernel) ExitS(code Msg) {
	k.checkClassS()
	tp := k.current
	tp.setExitCode(code)
	if k.cfg.OnExit != nil {
		k.cfg.OnExit(tp)
	}
	if tr := k.cfg.Tracer; tr != nil {
		tr.Exit(tp.name, code)
	}
	for !tp.waiting.empty() {
		k.ReadyI(tp.waiting.pop())
	}
	if !k.cfg.NoRegistry && tp.flags&flagStatic != 0 {
		// No memory to recover later, drop it from the registry now.
		k.reg.remove(tp)
	}
	k.st.finished++

	ntp := k.ready.pop()
	chk(ntp != nil, "exit: ready queue empty")
	tp.state = StateFinal
	if tp.flags&flagDynamic != 0 && tp.refs == 0 {
		k.reclaimS(tp)
	}
	ntp.state = StateRunning
	ntp.preempt = k.cfg.Quantum
	k.current = ntp
	k.st.switches++
	if tr := k.cfg.Tracer; tr != nil {
		tr.ContextSwitch(tp.name, ntp.name)
	}
	k.cfg.Port.Handoff(ntp.ctx)
	runtime.Goexit()
}

// Exit is the normal-class variant of ExitS. It never returns.
func (k *Kernel) Exit(code Msg) {
	k.Lock()
	k.ExitS(code)
}

// Wait blocks until tp terminates and returns its exit code, releasing one
// reference on it afterwards. Self-join is a contract violation, as is
// joining a fully released dynamic thread. After Wait returns, the handle
// must not be used again: a dynamic thread's work area may already have
// been reclaimed.
func (k *Kernel) Wait(tp *Thread) Msg {
	chk(tp != nil, "wait: nil thread")
	k.Lock()
	chk(tp != k.current, "wait: joining self")
	chk(tp.refs > 0, "wait: thread not referenced")
	if tp.state != StateFinal {
		tp.waiting.push(k.current)
		k.goSleepS(StateWaitingExit)
	}
	code := tp.u
	k.releaseS(tp)
	k.Unlock()
	return code
}

// AddRef takes an additional handle on tp so it can be joined or inspected
// independently of the creator's handle.
func (k *Kernel) AddRef(tp *Thread) *Thread {
	k.Lock()
	chk(tp != nil && tp.refs > 0, "addref: stale thread handle")
	tp.refs++
	k.Unlock()
	return tp
}

// Release drops one handle on tp. When the count reaches zero after the
// thread has terminated, a dynamic thread's work area returns to its origin
// allocator.
func (k *Kernel) Release(tp *Thread) {
	k.Lock()
	chk(tp != nil, "release: nil thread")
	k.releaseS(tp)
	k.Unlock()
}

func (k *Kernel) releaseS(tp *Thread) {
	chk(tp.refs > 0, "release: thread over-released")
	tp.refs--
	if tp.refs == 0 && tp.state == StateFinal {
		k.reclaimS(tp)
	}
}

// reclaimS hands a terminated dynamic thread's work area back to its origin
// allocator. Static work areas are caller-owned and never reclaimed.
func (k *Kernel) reclaimS(tp *Thread) {
	if tp.flags&flagDynamic == 0 {
		return
	}
	if !k.cfg.NoRegistry {
		k.reg.remove(tp)
	}
	origin, wa := tp.origin, tp.wa
	tp.origin = nil
	origin.Release(wa)
}
