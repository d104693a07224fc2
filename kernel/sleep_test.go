package kernel

import (
	"fmt"
	"testing"
)

func TestSleepWakesAtDeadline(t *testing.T) {
	k := newTestKernel(t, Config{})

	var wokeAt Systime
	var wakeMsg Msg
	tp := k.Create(NewWorkArea(MinWorkAreaSize), "sleeper", NormalPrio, func(any) Msg {
		k.Sleep(3)
		wokeAt = k.Now()
		k.Lock()
		wakeMsg = k.current.u
		k.Unlock()
		return MsgOK
	}, nil)
	k.Start(tp)
	k.Yield() // run the sleeper into its sleep

	if got := tp.State(); got != StateSleeping {
		t.Fatalf("State() = %v, want %v", got, StateSleeping)
	}

	tickN(k, 2)
	if got := tp.State(); got != StateSleeping {
		t.Fatalf("State() after 2 ticks = %v, want %v", got, StateSleeping)
	}
	tickN(k, 1)
	if got := tp.State(); got != StateReady {
		t.Fatalf("State() after 3 ticks = %v, want %v", got, StateReady)
	}

	k.Yield()
	k.Wait(tp)
	if wokeAt < 3 {
		t.Fatalf("woke at %d, want >= 3", wokeAt)
	}
	if wakeMsg != MsgTimeout {
		t.Fatalf("wakeup message = %d, want %d", wakeMsg, MsgTimeout)
	}
}

func TestZeroSleepIsNoop(t *testing.T) {
	k := newTestKernel(t, Config{})

	k.Sleep(0)
	k.SleepUntil(k.Now())
	k.SleepUntil(0)

	if got := k.Current().State(); got != StateRunning {
		t.Fatalf("State() = %v, want %v", got, StateRunning)
	}
	if got := k.Stats().SleepingThreads; got != 0 {
		t.Fatalf("Stats().SleepingThreads = %d, want 0", got)
	}
}

func TestSleepUntilFutureDeadline(t *testing.T) {
	k := newTestKernel(t, Config{})

	var wokeAt Systime
	tp := k.Create(NewWorkArea(MinWorkAreaSize), "sleeper", NormalPrio, func(any) Msg {
		k.SleepUntil(5)
		wokeAt = k.Now()
		return MsgOK
	}, nil)
	k.Start(tp)
	k.Yield()

	tickN(k, 5)
	k.Yield()
	k.Wait(tp)
	if wokeAt != 5 {
		t.Fatalf("woke at %d, want 5", wokeAt)
	}
}

func TestSleepersWakeInDeadlineOrder(t *testing.T) {
	k := newTestKernel(t, Config{})

	var order []string
	sleeper := func(arg any) Msg {
		d := arg.(Interval)
		k.Sleep(d)
		order = append(order, fmt.Sprintf("%d", d))
		return MsgOK
	}

	// Started in reverse deadline order to exercise the sorted insert.
	long := k.Start(k.Create(NewWorkArea(MinWorkAreaSize), "long", NormalPrio, sleeper, Interval(5)))
	short := k.Start(k.Create(NewWorkArea(MinWorkAreaSize), "short", NormalPrio, sleeper, Interval(2)))
	k.Yield()

	if got := k.Stats().SleepingThreads; got != 2 {
		t.Fatalf("Stats().SleepingThreads = %d, want 2", got)
	}

	tickN(k, 2)
	k.Yield()
	tickN(k, 3)
	k.Yield()

	k.Wait(short)
	k.Wait(long)
	want := []string{"2", "5"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Fatalf("wake order = %v, want %v", order, want)
	}
}

func TestInfiniteSleepIgnoresTicks(t *testing.T) {
	k := newTestKernel(t, Config{})

	tp := k.Create(NewWorkArea(MinWorkAreaSize), "forever", NormalPrio, func(any) Msg {
		k.Lock()
		k.SleepS(IntervalInfinite)
		msg := k.current.u
		k.Unlock()
		return msg
	}, nil)
	k.Start(tp)
	k.Yield()

	tickN(k, 100)
	if got := tp.State(); got != StateSleeping {
		t.Fatalf("State() after 100 ticks = %v, want %v", got, StateSleeping)
	}

	// Only an explicit wakeup releases it.
	k.Lock()
	k.WakeupS(tp, 33)
	k.Unlock()
	k.Yield()
	if code := k.Wait(tp); code != 33 {
		t.Fatalf("Wait() = %d, want 33", code)
	}
}

func TestNowAdvancesWithTicks(t *testing.T) {
	k := newTestKernel(t, Config{})

	start := k.Now()
	tickN(k, 7)
	if got := k.Now(); got != start+7 {
		t.Fatalf("Now() = %d, want %d", got, start+7)
	}
}
