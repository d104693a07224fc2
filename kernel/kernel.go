// Package kernel implements the thread-management and scheduling core of a
// small cooperative real-time kernel.
//
// All shared scheduler state (thread control blocks, the ready queue, the
// sleep list, the registry) is serialized by a single kernel lock. Every
// operation belongs to one of three invocation classes, encoded in its name:
//
//   - bare names are normal class: they acquire and release the lock
//     themselves and may only be called without it;
//   - an S suffix marks the locked-kernel class: the caller must hold the
//     lock via Lock/Unlock, and the operation may yield the processor;
//   - an I suffix marks operations additionally callable from simulated
//     interrupt context (LockFromISR/UnlockFromISR); these never yield.
//
// Calling an operation from the wrong class is a contract violation and
// panics.
package kernel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

type lockClass uint8

const (
	classNone lockClass = iota
	classLocked
	classISR
)

// Kernel is the process-wide scheduler context: the kernel lock, the running
// thread, the ready queue, the sleep list and the thread registry.
type Kernel struct {
	mu    sync.Mutex
	class lockClass

	current *Thread
	ready   readyQueue
	sleepq  *Thread // due-time ordered, linked through Thread.next

	ticks atomic.Uint64

	reg registry
	cfg Config
	st  statCounters
}

// New creates a kernel instance. The configuration must carry a Port.
func New(cfg Config) *Kernel {
	chk(cfg.Port != nil, "config has no port")
	return &Kernel{cfg: cfg}
}

// Lock enters the kernel critical section from thread context. Locked-class
// (S and I suffixed) operations may be composed until Unlock.
func (k *Kernel) Lock() {
	k.mu.Lock()
	k.class = classLocked
}

// Unlock leaves the kernel critical section entered by Lock.
func (k *Kernel) Unlock() {
	k.checkClassS()
	k.class = classNone
	k.mu.Unlock()
}

// LockFromISR enters the kernel critical section from simulated interrupt
// context. Only I-suffixed operations may be called until UnlockFromISR;
// they never yield, so wakeups take effect at the running thread's next
// scheduling point.
func (k *Kernel) LockFromISR() {
	k.mu.Lock()
	k.class = classISR
}

// UnlockFromISR leaves the critical section entered by LockFromISR.
func (k *Kernel) UnlockFromISR() {
	chk(k.class == classISR, "unlock from isr without isr lock")
	k.class = classNone
	k.mu.Unlock()
}

// checkClassI asserts that the caller is in locked-kernel or interrupt class.
func (k *Kernel) checkClassI() {
	chk(k.class == classLocked || k.class == classISR, "called without kernel lock")
}

// checkClassS asserts that the caller is in locked-kernel class.
func (k *Kernel) checkClassS() {
	chk(k.class == classLocked, "called outside locked thread context")
}

// Bootstrap adopts the calling goroutine as the first, running thread and
// spawns the idle thread. It must be called once, before any other lifecycle
// or scheduling operation.
func (k *Kernel) Bootstrap(name string, prio Prio) *Thread {
	chk(prio >= IdlePrio && prio <= HighPrio, "bootstrap priority out of range")

	k.Lock()
	chk(k.current == nil, "kernel already bootstrapped")
	tp := &Thread{
		name:     name,
		state:    StateRunning,
		prio:     prio,
		realPrio: prio,
		flags:    flagStatic,
		preempt:  k.cfg.Quantum,
		refs:     1,
		ctx:      k.cfg.Port.Adopt(),
		k:        k,
	}
	if !k.cfg.NoRegistry {
		k.reg.insert(tp)
	}
	k.current = tp

	idle := k.CreateI(NewWorkArea(MinWorkAreaSize), "idle", IdlePrio, k.idleLoop, nil)
	k.StartI(idle)
	k.Unlock()
	return tp
}

// idleLoop runs at IdlePrio and never blocks, so the ready queue is never
// empty. Its yield calls are the dispatch points for wakeups initiated from
// interrupt context while every other thread is blocked.
func (k *Kernel) idleLoop(any) Msg {
	hook := k.cfg.OnIdle
	if hook == nil {
		hook = runtime.Gosched
	}
	for {
		k.Yield()
		hook()
	}
}

// Current returns the running thread.
// Must not be called with the kernel locked.
func (k *Kernel) Current() *Thread {
	k.mu.Lock()
	tp := k.current
	k.mu.Unlock()
	return tp
}

// Now returns the current system time in ticks. Callable from any context.
func (k *Kernel) Now() Systime {
	return Systime(k.ticks.Load())
}
