package kernel

import "testing"

func TestSetPriorityReturnsPrevious(t *testing.T) {
	k := newTestKernel(t, Config{})

	if old := k.SetPriority(HighPrio); old != NormalPrio {
		t.Fatalf("SetPriority() = %v, want %v", old, NormalPrio)
	}
	if got := k.Current().Priority(); got != HighPrio {
		t.Fatalf("Priority() = %v, want %v", got, HighPrio)
	}
	if old := k.SetPriority(NormalPrio); old != HighPrio {
		t.Fatalf("SetPriority() = %v, want %v", old, HighPrio)
	}
}

func TestSetPriorityOutOfRangePanics(t *testing.T) {
	k := newTestKernel(t, Config{})
	mustPanic(t, func() { k.SetPriority(NoPrio) })
}

func TestLoweringBasePreservesBoost(t *testing.T) {
	k := newTestKernel(t, Config{})
	tp := k.Current()

	k.Lock()
	k.BoostPriorityS(tp, NormalPrio+10)
	k.Unlock()

	// The base drops but the effective priority stays at the boost.
	if old := k.SetPriority(LowPrio); old != NormalPrio {
		t.Fatalf("SetPriority() = %v, want %v", old, NormalPrio)
	}
	if got := tp.Priority(); got != NormalPrio+10 {
		t.Fatalf("Priority() = %v, want %v", got, NormalPrio+10)
	}
	if got := tp.BasePriority(); got != LowPrio {
		t.Fatalf("BasePriority() = %v, want %v", got, LowPrio)
	}

	// Raising past the boost takes effect directly.
	k.SetPriority(HighPrio)
	if got := tp.Priority(); got != HighPrio {
		t.Fatalf("Priority() = %v, want %v", got, HighPrio)
	}
	k.SetPriority(NormalPrio)
}

func TestBoostAndUnboost(t *testing.T) {
	k := newTestKernel(t, Config{})
	tp := k.Current()

	k.Lock()
	k.BoostPriorityS(tp, NormalPrio+10)
	// Boosting below the current effective priority is a no-op.
	k.BoostPriorityS(tp, NormalPrio+5)
	k.Unlock()
	if got := tp.Priority(); got != NormalPrio+10 {
		t.Fatalf("Priority() after boost = %v, want %v", got, NormalPrio+10)
	}
	if got := tp.BasePriority(); got != NormalPrio {
		t.Fatalf("BasePriority() after boost = %v, want %v", got, NormalPrio)
	}

	// Discharging the obligation never drops below the base priority.
	k.Lock()
	k.UnboostPriorityS(tp, LowPrio)
	k.RescheduleS()
	k.Unlock()
	if got := tp.Priority(); got != NormalPrio {
		t.Fatalf("Priority() after unboost = %v, want %v", got, NormalPrio)
	}
}

func TestBoostRequeuesReadyThread(t *testing.T) {
	k := newTestKernel(t, Config{})

	a := k.Create(NewWorkArea(MinWorkAreaSize), "a", LowPrio, func(any) Msg { return MsgOK }, nil)
	b := k.Create(NewWorkArea(MinWorkAreaSize), "b", LowPrio+1, func(any) Msg { return MsgOK }, nil)
	k.Start(a)
	k.Start(b)

	k.Lock()
	if got := k.ready.peek(); got != b {
		t.Fatalf("ready head = %q, want %q", got.name, b.name)
	}
	k.BoostPriorityS(a, LowPrio+2)
	if got := k.ready.peek(); got != a {
		t.Fatalf("ready head after boost = %q, want %q", got.name, a.name)
	}
	k.UnboostPriorityS(a, NoPrio)
	if got := k.ready.peek(); got != b {
		t.Fatalf("ready head after unboost = %q, want %q", got.name, b.name)
	}
	k.Unlock()

	k.Wait(a)
	k.Wait(b)
}

func TestNoInheritanceOverwritesDirectly(t *testing.T) {
	k := newTestKernel(t, Config{NoInheritance: true})
	tp := k.Current()

	k.SetPriority(LowPrio)
	if got := tp.Priority(); got != LowPrio {
		t.Fatalf("Priority() = %v, want %v", got, LowPrio)
	}
	if got := tp.BasePriority(); got != LowPrio {
		t.Fatalf("BasePriority() = %v, want %v", got, LowPrio)
	}
	k.SetPriority(NormalPrio)

	mustPanicLocked(t, k, func() {
		k.Lock()
		k.BoostPriorityS(tp, HighPrio)
	})
}
