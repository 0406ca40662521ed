package orchestration

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/probelab/evalmatrix/pkg/pool"
)

// DefaultHeartbeatInterval is how often progress is reported while a batch
// drains, unless the caller overrides it.
const DefaultHeartbeatInterval = 30 * time.Second

// Heartbeat is a background reporter that periodically prints batch progress.
// It is purely observational: it reads the completion set and writes a log
// line, nothing else.
type Heartbeat struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartHeartbeat begins emitting a progress line every interval, of the form
//
//	completed/total scenarios done (elapsed) [concurrency=N|unbounded]
//
// The completion set is read at tick time, so each line reflects progress at
// the moment it is printed. Stop it with Stop.
func StartHeartbeat(out io.Writer, completed *CompletionSet, total int, limit pool.Limit, interval time.Duration, start time.Time) *Heartbeat {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}

	hb := &Heartbeat{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(hb.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-hb.stop:
				return
			case <-ticker.C:
				fmt.Fprintf(out, "%d/%d scenarios done (%s) [concurrency=%s]\n",
					completed.Count(), total,
					time.Since(start).Round(time.Second), limit)
			}
		}
	}()

	return hb
}

// Stop halts the heartbeat. It is idempotent, safe to call before the first
// tick, and no line is printed after it returns.
func (h *Heartbeat) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}
