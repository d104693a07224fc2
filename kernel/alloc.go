package kernel

import "errors"

// MinWorkAreaSize is the smallest acceptable work area: room for the control
// block bookkeeping plus a minimum stack reservation.
const MinWorkAreaSize = 512

// ErrOutOfMemory is returned by CreateDynamic when the allocator cannot
// supply a work area. The kernel never retries.
var ErrOutOfMemory = errors.New("kernel: allocator exhausted")

// WorkArea is the backing storage for one thread: the control block is laid
// out at its start, the rest is the stack reservation. Ownership transfers
// to the kernel at creation; for dynamic threads it returns to the origin
// allocator once the last reference is dropped after termination.
//
// The host port executes threads on goroutine stacks and uses the
// reservation only to model stack bounds.
type WorkArea struct {
	thread Thread
	stack  []byte
}

// NewWorkArea reserves a work area with the given stack size in bytes.
func NewWorkArea(size int) *WorkArea {
	return &WorkArea{stack: make([]byte, size)}
}

// Size returns the stack reservation size in bytes.
func (wa *WorkArea) Size() int { return len(wa.stack) }

// Allocator supplies and reclaims thread work areas for dynamic creation.
// Implementations must not call back into the kernel.
type Allocator interface {
	// Allocate returns a work area of at least the given stack size, or nil
	// when exhausted.
	Allocate(size int) *WorkArea
	// Release takes back a work area previously returned by Allocate.
	Release(wa *WorkArea)
}
