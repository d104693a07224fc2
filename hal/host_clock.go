//go:build !tinygo

package hal

import (
	"time"

	"ember/kernel"
)

// Ticker drives the kernel time base from a wall-clock ticker, standing in
// for the hardware timer interrupt on the host.
type Ticker struct {
	stop chan struct{}
	done chan struct{}
}

// StartTicker delivers one kernel tick every period until Stop is called.
func StartTicker(k *kernel.Kernel, period time.Duration) *Ticker {
	t := &Ticker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		tick := time.NewTicker(period)
		defer tick.Stop()
		for {
			select {
			case <-tick.C:
				k.LockFromISR()
				k.TickI()
				k.UnlockFromISR()
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

// Stop halts tick delivery and waits for the tick goroutine to finish.
func (t *Ticker) Stop() {
	close(t.stop)
	<-t.done
}
