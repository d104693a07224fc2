package kernel

import "testing"

func snapshotNames(k *Kernel) map[string]ThreadInfo {
	out := make(map[string]ThreadInfo)
	for _, ti := range k.Snapshot() {
		out[ti.Name] = ti
	}
	return out
}

func TestSnapshotListsLiveThreads(t *testing.T) {
	k := newTestKernel(t, Config{})

	tp := k.Create(NewWorkArea(MinWorkAreaSize), "worker", LowPrio, func(any) Msg {
		return MsgOK
	}, nil)

	infos := snapshotNames(k)
	for _, name := range []string{"main", "idle", "worker"} {
		if _, ok := infos[name]; !ok {
			t.Fatalf("Snapshot() missing %q", name)
		}
	}
	if got := infos["main"].State; got != StateRunning {
		t.Fatalf("main state = %v, want %v", got, StateRunning)
	}
	if got := infos["worker"].State; got != StateWaitingStart {
		t.Fatalf("worker state = %v, want %v", got, StateWaitingStart)
	}
	if got := infos["idle"].Priority; got != IdlePrio {
		t.Fatalf("idle priority = %v, want %v", got, IdlePrio)
	}

	k.Terminate(tp)
	if !snapshotNames(k)["worker"].TerminateRequested {
		t.Fatal("Snapshot() does not reflect the termination request")
	}
	k.Start(tp)
	k.Wait(tp)
}

func TestStaticThreadLeavesRegistryAtExit(t *testing.T) {
	k := newTestKernel(t, Config{})

	tp := k.Create(NewWorkArea(MinWorkAreaSize), "transient", NormalPrio+1, func(any) Msg {
		return MsgOK
	}, nil)
	k.Start(tp) // runs to completion immediately

	if k.Lookup("transient") != nil {
		t.Fatal("Lookup() found an exited static thread")
	}
	k.Wait(tp)
}

func TestLookupUnknownName(t *testing.T) {
	k := newTestKernel(t, Config{})
	if k.Lookup("no-such-thread") != nil {
		t.Fatal("Lookup() = non-nil for unknown name")
	}
}

func TestNoRegistryDisablesIntrospection(t *testing.T) {
	k := newTestKernel(t, Config{NoRegistry: true})

	tp := k.Create(NewWorkArea(MinWorkAreaSize), "worker", LowPrio, func(any) Msg {
		return MsgOK
	}, nil)
	if k.Snapshot() != nil {
		t.Fatal("Snapshot() = non-nil with registry disabled")
	}
	if k.Lookup("worker") != nil {
		t.Fatal("Lookup() = non-nil with registry disabled")
	}

	k.Start(tp)
	k.Wait(tp)
}

func TestStatsCountSchedulerActivity(t *testing.T) {
	k := newTestKernel(t, Config{})
	before := k.Stats()

	tp := k.Create(NewWorkArea(MinWorkAreaSize), "worker", NormalPrio, func(any) Msg {
		return MsgOK
	}, nil)
	k.Start(tp)
	k.Wait(tp)

	after := k.Stats()
	if after.ThreadsCreated != before.ThreadsCreated+1 {
		t.Fatalf("ThreadsCreated = %d, want %d", after.ThreadsCreated, before.ThreadsCreated+1)
	}
	if after.ThreadsFinished != before.ThreadsFinished+1 {
		t.Fatalf("ThreadsFinished = %d, want %d", after.ThreadsFinished, before.ThreadsFinished+1)
	}
	if after.ContextSwitches <= before.ContextSwitches {
		t.Fatalf("ContextSwitches = %d, want > %d", after.ContextSwitches, before.ContextSwitches)
	}
}
