package kernel

type statCounters struct {
	switches    uint64
	preemptions uint64
	created     uint64
	finished    uint64
}

// Stats is a point-in-time snapshot of scheduler activity.
type Stats struct {
	ContextSwitches uint64 // dispatches of a different thread
	Preemptions     uint64 // involuntary switches (priority or quantum)
	ThreadsCreated  uint64
	ThreadsFinished uint64
	ReadyThreads    int // current ready-queue depth
	SleepingThreads int // current sleep-list length
	Ticks           uint64
}

// Stats returns a consistent snapshot of the scheduler counters.
func (k *Kernel) Stats() Stats {
	k.Lock()
	s := Stats{
		ContextSwitches: k.st.switches,
		Preemptions:     k.st.preemptions,
		ThreadsCreated:  k.st.created,
		ThreadsFinished: k.st.finished,
		Ticks:           k.ticks.Load(),
	}
	for tp := k.ready.head; tp != nil; tp = tp.next {
		s.ReadyThreads++
	}
	for tp := k.sleepq; tp != nil; tp = tp.next {
		s.SleepingThreads++
	}
	k.Unlock()
	return s
}
