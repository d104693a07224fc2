package kernel

// Ref is a single-slot parking cell: it decouples a waiting thread's
// identity from whoever wakes it. A driver keeps one Ref per pending
// operation; the thread suspends on it and the completion interrupt resumes
// it with a message. At most one thread may occupy a cell at a time.
type Ref struct {
	tp *Thread
}

// Occupied reports whether a thread is parked on the cell.
// Must only be called with the kernel locked.
func (r *Ref) Occupied() bool { return r.tp != nil }

// SuspendS parks the running thread on the cell and dispatches the next
// ready thread. Returns the message supplied by the resumer. Suspending on
// an occupied cell is a contract violation.
func (k *Kernel) SuspendS(r *Ref) Msg {
	k.checkClassS()
	chk(r != nil, "suspend: nil reference")
	chk(r.tp == nil, "suspend: reference cell already occupied")
	tp := k.current
	r.tp = tp
	k.goSleepS(StateSuspended)
	return tp.u
}

// ResumeI wakes the thread parked on the cell, delivering msg, and clears
// the cell. The thread is queued but not dispatched: interrupt context
// cannot yield. An empty cell is a harmless no-op, so a completion may race
// a timeout with no synchronization beyond the cell itself.
func (k *Kernel) ResumeI(r *Ref, msg Msg) {
	k.checkClassI()
	chk(r != nil, "resume: nil reference")
	tp := r.tp
	if tp == nil {
		return
	}
	chk(tp.state == StateSuspended, "resume: thread not suspended")
	r.tp = nil
	tp.u = msg
	k.ReadyI(tp)
}

// ResumeS is ResumeI from locked thread context: the woken thread may
// preempt the caller immediately.
func (k *Kernel) ResumeS(r *Ref, msg Msg) {
	k.checkClassS()
	chk(r != nil, "resume: nil reference")
	tp := r.tp
	if tp == nil {
		return
	}
	chk(tp.state == StateSuspended, "resume: thread not suspended")
	r.tp = nil
	k.WakeupS(tp, msg)
}

// Resume is the normal-class variant of ResumeS.
func (k *Kernel) Resume(r *Ref, msg Msg) {
	k.Lock()
	k.ResumeS(r, msg)
	k.Unlock()
}
