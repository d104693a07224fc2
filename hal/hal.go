// Package hal supplies the platform-dependent pieces the kernel is
// parameterized over: the context-switch port, the tick source standing in
// for the timer interrupt, and work-area allocators. The host variants run
// on goroutines and wall-clock time; a bare-metal build would provide its
// own port and tick source behind the same interfaces.
package hal
