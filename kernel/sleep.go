package kernel

// Systime is an absolute time in ticks of the external time base.
type Systime uint64

// Interval is a duration in ticks.
type Interval uint64

// IntervalInfinite parks a sleeping thread with no deadline; only an
// explicit wakeup releases it.
const IntervalInfinite Interval = ^Interval(0)

// SleepS blocks the running thread for d ticks. A zero interval returns
// immediately: elapsed or empty sleeps are treated as no-ops rather than
// rejected.
func (k *Kernel) SleepS(d Interval) {
	k.checkClassS()
	if d == 0 {
		return
	}
	tp := k.current
	if d != IntervalInfinite {
		tp.deadline = k.Now() + Systime(d)
		k.sleepInsert(tp)
	}
	k.goSleepS(StateSleeping)
}

// Sleep is the normal-class variant of SleepS.
func (k *Kernel) Sleep(d Interval) {
	k.Lock()
	k.SleepS(d)
	k.Unlock()
}

// SleepUntil blocks the running thread until the system time reaches when.
// A time already reached returns immediately.
func (k *Kernel) SleepUntil(when Systime) {
	k.Lock()
	if d := int64(when - k.Now()); d > 0 {
		k.SleepS(Interval(d))
	}
	k.Unlock()
}

// sleepInsert links tp into the sleep list, kept ordered by deadline so the
// tick handler only inspects the head.
func (k *Kernel) sleepInsert(tp *Thread) {
	cp := &k.sleepq
	for *cp != nil && (*cp).deadline <= tp.deadline {
		cp = &(*cp).next
	}
	tp.next = *cp
	*cp = tp
}

// TickI advances the time base by one tick: expired sleepers are readied
// with MsgTimeout and the running thread's quantum burns down. Called by
// the external tick source from interrupt context; the wakeups take effect
// at the running thread's next scheduling point.
func (k *Kernel) TickI() {
	k.checkClassI()
	now := Systime(k.ticks.Add(1))
	for k.sleepq != nil && k.sleepq.deadline <= now {
		tp := k.sleepq
		k.sleepq = tp.next
		tp.next = nil
		tp.u = MsgTimeout
		k.ReadyI(tp)
	}
	if cur := k.current; cur != nil && k.cfg.Quantum > 0 && cur.preempt > 0 {
		cur.preempt--
	}
}
