package kernel

// readyQueue is an intrusive priority-ordered list threaded through
// Thread.next: descending effective priority, first-in-first-out within a
// priority band. Storage is links inside the control blocks, so queue
// operations never allocate and cannot fail.
type readyQueue struct {
	head *Thread
}

// insertBehind places tp after every queued thread of equal or higher
// priority. This is the normal readying order: equal-priority threads run
// first-in-first-out.
func (q *readyQueue) insertBehind(tp *Thread) {
	cp := &q.head
	for *cp != nil && (*cp).prio >= tp.prio {
		cp = &(*cp).next
	}
	tp.next = *cp
	*cp = tp
}

// insertAhead places tp before queued threads of equal priority. Used for a
// preempted thread that has not consumed its quantum: it keeps its turn.
func (q *readyQueue) insertAhead(tp *Thread) {
	cp := &q.head
	for *cp != nil && (*cp).prio > tp.prio {
		cp = &(*cp).next
	}
	tp.next = *cp
	*cp = tp
}

// peek returns the highest-priority queued thread without removing it.
func (q *readyQueue) peek() *Thread { return q.head }

// pop removes and returns the highest-priority queued thread.
func (q *readyQueue) pop() *Thread {
	tp := q.head
	if tp == nil {
		return nil
	}
	q.head = tp.next
	tp.next = nil
	return tp
}

// remove unlinks tp wherever it sits in the queue. No-op if absent.
func (q *readyQueue) remove(tp *Thread) {
	for cp := &q.head; *cp != nil; cp = &(*cp).next {
		if *cp == tp {
			*cp = tp.next
			tp.next = nil
			return
		}
	}
}
