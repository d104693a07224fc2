package kernel

// SetPriority changes the running thread's own priority and returns the
// previous one. With inheritance enabled the base priority is always
// updated, but the effective priority never drops below an active boost: it
// only moves to newprio when the thread is unboosted, or when newprio
// exceeds the boosted value. A reschedule follows, since lowering may make
// another ready thread preferable.
func (k *Kernel) SetPriority(newprio Prio) Prio {
	chk(newprio >= IdlePrio && newprio <= HighPrio, "setpriority: priority out of range")

	k.Lock()
	tp := k.current
	var oldprio Prio
	if k.cfg.NoInheritance {
		oldprio = tp.prio
		tp.prio = newprio
		tp.realPrio = newprio
	} else {
		oldprio = tp.realPrio
		if tp.prio == tp.realPrio || newprio > tp.prio {
			tp.prio = newprio
		}
		tp.realPrio = newprio
	}
	k.RescheduleS()
	k.Unlock()
	return oldprio
}

// BoostPriorityS raises tp's effective priority to prio on behalf of an
// obligation it owns (typically a contended mutex held while a
// higher-priority thread waits). No-op when tp already runs at prio or
// above. A ready thread is repositioned in the queue.
func (k *Kernel) BoostPriorityS(tp *Thread, prio Prio) {
	k.checkClassS()
	chk(tp != nil, "boost: nil thread")
	chk(!k.cfg.NoInheritance, "boost: priority inheritance disabled")
	if prio <= tp.prio {
		return
	}
	tp.prio = prio
	if tp.state == StateReady {
		k.ready.remove(tp)
		k.ready.insertBehind(tp)
	}
}

// UnboostPriorityS lowers tp's effective priority to the higher of prio and
// its base priority, used when an obligation is discharged. The caller must
// reschedule before releasing the lock.
func (k *Kernel) UnboostPriorityS(tp *Thread, prio Prio) {
	k.checkClassS()
	chk(tp != nil, "unboost: nil thread")
	chk(!k.cfg.NoInheritance, "unboost: priority inheritance disabled")
	if prio < tp.realPrio {
		prio = tp.realPrio
	}
	if prio >= tp.prio {
		return
	}
	tp.prio = prio
	if tp.state == StateReady {
		k.ready.remove(tp)
		k.ready.insertBehind(tp)
	}
}
