package kernel

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// ViolationInfo describes a detected contract violation.
type ViolationInfo struct {
	Reason string
	Stack  []byte
}

var (
	violationActive atomic.Bool
	violationOnce   sync.Once

	violationHandler atomic.Value // func(ViolationInfo)
)

// InViolation reports whether a contract violation has been detected.
func InViolation() bool {
	return violationActive.Load()
}

// SetViolationHandler installs a process-wide hook invoked on the first
// contract violation, before the panic propagates. It must not panic and
// must not call into any kernel.
func SetViolationHandler(fn func(ViolationInfo)) {
	violationHandler.Store(fn)
}

// chk asserts a kernel contract. Violations are programming errors, not
// runtime conditions: invariants are already broken and recovery is
// undefined, so the kernel reports and panics instead of attempting to
// continue.
func chk(cond bool, reason string) {
	if cond {
		return
	}
	violationOnce.Do(func() {
		violationActive.Store(true)
		if v := violationHandler.Load(); v != nil {
			if fn, ok := v.(func(ViolationInfo)); ok && fn != nil {
				fn(ViolationInfo{Reason: reason, Stack: debug.Stack()})
			}
		}
	})
	panic("kernel: " + reason)
}
