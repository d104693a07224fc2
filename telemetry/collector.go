// Package telemetry exposes kernel scheduler activity as Prometheus
// metrics: switch and preemption counters, queue depths, and a per-thread
// state gauge built from the registry.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"ember/kernel"
)

// Collector implements prometheus.Collector over one kernel instance.
type Collector struct {
	k *kernel.Kernel

	switches    *prometheus.Desc
	preemptions *prometheus.Desc
	created     *prometheus.Desc
	finished    *prometheus.Desc
	ticks       *prometheus.Desc
	ready       *prometheus.Desc
	sleeping    *prometheus.Desc
	threadState *prometheus.Desc
}

// NewCollector builds a collector for k. Register it with a Prometheus
// registry; each scrape takes a kernel snapshot.
func NewCollector(k *kernel.Kernel) *Collector {
	return &Collector{
		k: k,
		switches: prometheus.NewDesc(
			"ember_context_switches_total",
			"Number of context switches performed by the scheduler.",
			nil, nil),
		preemptions: prometheus.NewDesc(
			"ember_preemptions_total",
			"Number of involuntary context switches (priority or quantum).",
			nil, nil),
		created: prometheus.NewDesc(
			"ember_threads_created_total",
			"Number of threads created.",
			nil, nil),
		finished: prometheus.NewDesc(
			"ember_threads_finished_total",
			"Number of threads that reached their final state.",
			nil, nil),
		ticks: prometheus.NewDesc(
			"ember_ticks_total",
			"Ticks delivered by the external time base.",
			nil, nil),
		ready: prometheus.NewDesc(
			"ember_ready_threads",
			"Current ready-queue depth.",
			nil, nil),
		sleeping: prometheus.NewDesc(
			"ember_sleeping_threads",
			"Threads currently on the sleep list.",
			nil, nil),
		threadState: prometheus.NewDesc(
			"ember_thread_state",
			"Per-thread state indicator (1 for the current state).",
			[]string{"thread", "state"}, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.switches
	ch <- c.preemptions
	ch <- c.created
	ch <- c.finished
	ch <- c.ticks
	ch <- c.ready
	ch <- c.sleeping
	ch <- c.threadState
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.k.Stats()
	ch <- prometheus.MustNewConstMetric(c.switches, prometheus.CounterValue, float64(st.ContextSwitches))
	ch <- prometheus.MustNewConstMetric(c.preemptions, prometheus.CounterValue, float64(st.Preemptions))
	ch <- prometheus.MustNewConstMetric(c.created, prometheus.CounterValue, float64(st.ThreadsCreated))
	ch <- prometheus.MustNewConstMetric(c.finished, prometheus.CounterValue, float64(st.ThreadsFinished))
	ch <- prometheus.MustNewConstMetric(c.ticks, prometheus.CounterValue, float64(st.Ticks))
	ch <- prometheus.MustNewConstMetric(c.ready, prometheus.GaugeValue, float64(st.ReadyThreads))
	ch <- prometheus.MustNewConstMetric(c.sleeping, prometheus.GaugeValue, float64(st.SleepingThreads))

	for _, ti := range c.k.Snapshot() {
		ch <- prometheus.MustNewConstMetric(c.threadState, prometheus.GaugeValue, 1,
			ti.Name, ti.State.String())
	}
}
