package hal

import (
	"testing"

	"ember/kernel"
)

func TestWorkAreaPoolExhaustion(t *testing.T) {
	p := NewWorkAreaPool(2, 1024)
	if got := p.Free(); got != 2 {
		t.Fatalf("Free() = %d, want 2", got)
	}

	a := p.Allocate(1024)
	b := p.Allocate(1024)
	if a == nil || b == nil {
		t.Fatal("Allocate() = nil with areas available")
	}
	if p.Allocate(1024) != nil {
		t.Fatal("Allocate() = non-nil on an exhausted pool")
	}

	p.Release(a)
	if got := p.Free(); got != 1 {
		t.Fatalf("Free() after release = %d, want 1", got)
	}
	if p.Allocate(1024) == nil {
		t.Fatal("Allocate() = nil after a release")
	}
}

func TestWorkAreaPoolRejectsOversize(t *testing.T) {
	p := NewWorkAreaPool(1, 1024)
	if p.Allocate(2048) != nil {
		t.Fatal("Allocate() = non-nil for a request above the slot size")
	}
	if got := p.Free(); got != 1 {
		t.Fatalf("Free() = %d, want 1", got)
	}
}

func TestWorkAreaPoolMinimumSlotSize(t *testing.T) {
	p := NewWorkAreaPool(1, 1)
	wa := p.Allocate(1)
	if wa == nil {
		t.Fatal("Allocate() = nil")
	}
	if got := wa.Size(); got < kernel.MinWorkAreaSize {
		t.Fatalf("Size() = %d, want >= %d", got, kernel.MinWorkAreaSize)
	}
}

func TestHeapAllocatorRoundsUp(t *testing.T) {
	var a HeapAllocator
	wa := a.Allocate(1)
	if wa == nil {
		t.Fatal("Allocate() = nil")
	}
	if got := wa.Size(); got < kernel.MinWorkAreaSize {
		t.Fatalf("Size() = %d, want >= %d", got, kernel.MinWorkAreaSize)
	}
	a.Release(wa)
}
