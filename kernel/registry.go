package kernel

// registry is the process-wide set of live control blocks, an intrusive
// doubly-linked list for O(1) removal. Static threads leave it at exit,
// dynamic ones when their work area is reclaimed, so terminated-but-still
// referenced dynamic threads remain inspectable.
type registry struct {
	head *Thread
}

func (r *registry) insert(tp *Thread) {
	tp.regPrev = nil
	tp.regNext = r.head
	if r.head != nil {
		r.head.regPrev = tp
	}
	r.head = tp
}

func (r *registry) remove(tp *Thread) {
	if tp.regPrev != nil {
		tp.regPrev.regNext = tp.regNext
	} else if r.head == tp {
		r.head = tp.regNext
	}
	if tp.regNext != nil {
		tp.regNext.regPrev = tp.regPrev
	}
	tp.regNext = nil
	tp.regPrev = nil
}

// ThreadInfo is a point-in-time view of one registered thread.
type ThreadInfo struct {
	Name               string
	State              State
	Priority           Prio
	BasePriority       Prio
	Refs               int32
	TerminateRequested bool
}

// Snapshot returns a consistent view of every registered thread. Returns
// nil when the registry capability is disabled.
func (k *Kernel) Snapshot() []ThreadInfo {
	k.Lock()
	var out []ThreadInfo
	for tp := k.reg.head; tp != nil; tp = tp.regNext {
		out = append(out, ThreadInfo{
			Name:               tp.name,
			State:              tp.state,
			Priority:           tp.prio,
			BasePriority:       tp.realPrio,
			Refs:               tp.refs,
			TerminateRequested: tp.flags&flagTerminate != 0,
		})
	}
	k.Unlock()
	return out
}

// Lookup returns the first registered thread with the given name, or nil.
func (k *Kernel) Lookup(name string) *Thread {
	k.Lock()
	defer k.Unlock()
	for tp := k.reg.head; tp != nil; tp = tp.regNext {
		if tp.name == name {
			return tp
		}
	}
	return nil
}
