package hal

import (
	"sync"

	"ember/kernel"
)

// WorkAreaPool is a fixed-capacity work-area allocator: all areas are
// reserved up front and recycled, so dynamic thread creation never touches
// the heap after construction. Exhaustion returns nil, which the kernel
// surfaces as an allocation failure.
type WorkAreaPool struct {
	mu   sync.Mutex
	size int
	free []*kernel.WorkArea
}

// NewWorkAreaPool reserves count work areas of the given stack size.
func NewWorkAreaPool(count, size int) *WorkAreaPool {
	if size < kernel.MinWorkAreaSize {
		size = kernel.MinWorkAreaSize
	}
	p := &WorkAreaPool{size: size}
	for i := 0; i < count; i++ {
		p.free = append(p.free, kernel.NewWorkArea(size))
	}
	return p
}

// Allocate hands out a pooled work area, or nil when the pool is exhausted
// or the requested size exceeds the slot size.
func (p *WorkAreaPool) Allocate(size int) *kernel.WorkArea {
	if size > p.size {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		return nil
	}
	wa := p.free[n-1]
	p.free = p.free[:n-1]
	return wa
}

// Release recycles a work area for a later Allocate.
func (p *WorkAreaPool) Release(wa *kernel.WorkArea) {
	p.mu.Lock()
	p.free = append(p.free, wa)
	p.mu.Unlock()
}

// Free returns the number of available work areas.
func (p *WorkAreaPool) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// HeapAllocator allocates work areas from the Go heap and lets the garbage
// collector take released ones back.
type HeapAllocator struct{}

func (HeapAllocator) Allocate(size int) *kernel.WorkArea {
	if size < kernel.MinWorkAreaSize {
		size = kernel.MinWorkAreaSize
	}
	return kernel.NewWorkArea(size)
}

func (HeapAllocator) Release(wa *kernel.WorkArea) {}
