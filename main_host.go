//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ember/hal"
	"ember/internal/buildinfo"
	"ember/kernel"
	"ember/ktrace"
	"ember/telemetry"
)

func main() {
	var (
		hz          = flag.Int("hz", 1000, "Tick rate of the simulated timer interrupt.")
		workers     = flag.Int("workers", 4, "Number of dynamic worker threads.")
		traceSched  = flag.Bool("trace", false, "Log every scheduler event.")
		metricsAddr = flag.String("metrics", "", "Serve Prometheus metrics on this address until interrupted (empty = off).")
	)
	flag.Parse()

	log.DefaultLogger = log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05.000",
		Writer:     &log.ConsoleWriter{ColorOutput: true, Writer: os.Stderr},
	}

	cfg := kernel.Config{
		Port:    hal.HostPort{},
		Quantum: 10,
	}
	if *traceSched {
		log.DefaultLogger.Level = log.TraceLevel
		cfg.Tracer = ktrace.New(log.TraceLevel, &log.IOWriter{Writer: os.Stderr})
	}

	k := kernel.New(cfg)
	k.Bootstrap("main", kernel.NormalPrio)

	ticker := hal.StartTicker(k, time.Second/time.Duration(*hz))
	defer ticker.Stop()

	log.Info().
		Str("version", buildinfo.Short()).
		Int("hz", *hz).
		Int("workers", *workers).
		Msg("ember host kernel up")

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(telemetry.NewCollector(k))
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Info().Str("addr", *metricsAddr).Msg("serving metrics")
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	runDemo(k, *workers)

	st := k.Stats()
	log.Info().
		Uint64("switches", st.ContextSwitches).
		Uint64("preemptions", st.Preemptions).
		Uint64("threads", st.ThreadsFinished).
		Uint64("ticks", st.Ticks).
		Msg("demo finished")

	if *metricsAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		<-ctx.Done()
	}
}

// runDemo exercises the thread core: a pool of dynamic workers doing timed
// sleeps, and an I/O thread parked on a reference cell that a simulated
// device interrupt resumes.
func runDemo(k *kernel.Kernel, workers int) {
	pool := hal.NewWorkAreaPool(workers, 4096)

	var ioRef kernel.Ref
	ioDone := make(chan struct{})
	io := k.Create(kernel.NewWorkArea(4096), "io", kernel.NormalPrio+8, func(any) kernel.Msg {
		var served kernel.Msg
		for {
			k.Lock()
			msg := k.SuspendS(&ioRef)
			k.Unlock()
			if msg == kernel.MsgReset {
				return served
			}
			served++
			log.Debug().Int("completion", int(msg)).Msg("io completion handled")
		}
	}, nil)
	k.Start(io)

	// Device goroutine: a completion interrupt every few milliseconds, then
	// resets until the io thread is gone. A reset landing on an empty cell
	// is a no-op, so the retry loop needs no extra synchronization.
	ioExited := make(chan struct{})
	go func() {
		n := kernel.Msg(1)
		for {
			select {
			case <-ioDone:
				for {
					select {
					case <-ioExited:
						return
					case <-time.After(time.Millisecond):
						k.LockFromISR()
						k.ResumeI(&ioRef, kernel.MsgReset)
						k.UnlockFromISR()
					}
				}
			case <-time.After(3 * time.Millisecond):
				k.LockFromISR()
				k.ResumeI(&ioRef, n)
				k.UnlockFromISR()
				n++
			}
		}
	}()

	threads := make([]*kernel.Thread, 0, workers)
	for i := 0; i < workers; i++ {
		tp, err := k.CreateDynamic(pool, 4096, kernel.NormalPrio, fmt.Sprintf("worker-%d", i),
			func(any) kernel.Msg {
				for n := 0; n < 5; n++ {
					k.Sleep(kernel.Interval(2 + i))
					if k.ShouldTerminate() {
						return kernel.MsgReset
					}
				}
				return kernel.Msg(i * 10)
			}, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("worker creation failed")
		}
		threads = append(threads, k.Start(tp))
	}

	for i, tp := range threads {
		code := k.Wait(tp)
		log.Info().Int("worker", i).Int("code", int(code)).Msg("worker joined")
	}

	close(ioDone)
	code := k.Wait(io)
	close(ioExited)
	log.Info().Int("completions", int(code)).Msg("io thread joined")
}
