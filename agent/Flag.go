package agent

import (
	"sync/atomic"
)

// Flag is a process-wide stop flag shared by every worker in a run.
// One writer sets it exactly once; workers only ever observe it, once
// per completed episode, and never block on it.
type Flag struct {
	value int32
}

// Set raises the flag
func (f *Flag) Set() {
	atomic.StoreInt32(&f.value, 1)
}

// IsSet returns whether the flag has been raised
func (f *Flag) IsSet() bool {
	return atomic.LoadInt32(&f.value) != 0
}
