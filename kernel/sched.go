package kernel

// ReadyI moves tp into the ready queue behind its priority peers. The thread
// must be in a startable or blocked state; it is the caller's job to have
// unlinked it from whatever wait structure held it. No scheduling decision
// is taken, which is why this is legal from interrupt context.
func (k *Kernel) ReadyI(tp *Thread) *Thread {
	k.checkClassI()
	chk(tp != nil, "ready: nil thread")
	chk(tp.state != StateReady && tp.state != StateRunning && tp.state != StateFinal,
		"ready: thread not in a wakeable state")
	tp.state = StateReady
	k.ready.insertBehind(tp)
	if tr := k.cfg.Tracer; tr != nil {
		tr.Ready(tp.name)
	}
	return tp
}

// readyAheadI is ReadyI for a thread that was preempted before consuming its
// quantum: it goes in front of its priority peers.
func (k *Kernel) readyAheadI(tp *Thread) {
	tp.state = StateReady
	k.ready.insertAhead(tp)
	if tr := k.cfg.Tracer; tr != nil {
		tr.Ready(tp.name)
	}
}

// switchTo dispatches ntp and suspends the calling thread's context. The
// kernel lock is held across the switch; its ownership travels with the run
// token and the resumed side eventually releases it. Returns when the old
// thread is dispatched again.
func (k *Kernel) switchTo(ntp *Thread) {
	otp := k.current
	ntp.state = StateRunning
	ntp.preempt = k.cfg.Quantum
	k.current = ntp
	k.st.switches++
	if tr := k.cfg.Tracer; tr != nil {
		tr.ContextSwitch(otp.name, ntp.name)
	}
	k.cfg.Port.Swap(otp.ctx, ntp.ctx)
}

// goSleepS puts the running thread into the given blocked state and
// dispatches the next ready thread. Returns once the caller is woken and
// dispatched again; the wakeup message is then in its u slot.
func (k *Kernel) goSleepS(newstate State) {
	k.checkClassS()
	otp := k.current
	otp.state = newstate
	ntp := k.ready.pop()
	chk(ntp != nil, "scheduler: ready queue empty")
	k.switchTo(ntp)
}

// WakeupS delivers msg to tp and makes it ready. If tp outranks the running
// thread it is dispatched immediately and the caller is preempted.
func (k *Kernel) WakeupS(ntp *Thread, msg Msg) {
	k.checkClassS()
	chk(ntp != nil, "wakeup: nil thread")
	ntp.u = msg
	if ntp.prio <= k.current.prio {
		k.ReadyI(ntp)
		return
	}
	k.ReadyI(k.current)
	k.st.preemptions++
	k.switchTo(ntp)
}

// RescheduleS performs a scheduling decision: if the head of the ready queue
// outranks the running thread, or ties with it after its quantum is spent,
// the running thread is preempted. Every operation that readies a thread
// from locked thread context must be followed by this before the lock is
// released.
func (k *Kernel) RescheduleS() {
	k.checkClassS()
	first := k.ready.peek()
	if first == nil {
		return
	}
	cur := k.current
	if first.prio > cur.prio {
		// Preempted with quantum remaining: the thread keeps its turn
		// within its own priority band.
		k.readyAheadI(cur)
		k.st.preemptions++
		k.switchTo(k.ready.pop())
		return
	}
	if k.cfg.Quantum > 0 && cur.preempt == 0 && first.prio == cur.prio {
		k.ReadyI(cur)
		k.st.preemptions++
		k.switchTo(k.ready.pop())
	}
}

// DoYieldS yields the rest of the quantum to the next ready thread of equal
// or higher priority, if any.
func (k *Kernel) DoYieldS() {
	k.checkClassS()
	first := k.ready.peek()
	if first == nil || first.prio < k.current.prio {
		return
	}
	k.ReadyI(k.current)
	k.switchTo(k.ready.pop())
}

// Yield voluntarily relinquishes the processor to a ready thread of equal
// priority. No-op when the running thread outranks everything queued.
func (k *Kernel) Yield() {
	k.Lock()
	k.DoYieldS()
	k.Unlock()
}
