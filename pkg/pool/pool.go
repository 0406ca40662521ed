// Package pool provides a bounded-parallelism task executor that preserves
// input order in its results regardless of completion order.
package pool

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Limit is the concurrency cap for a batch: either bounded at some k ≥ 1 or
// unbounded. Callers translating a CLI value should use FromFlag so the
// zero-means-unlimited convention never leaks past the flag boundary.
type Limit struct {
	n int // 0 means unbounded
}

// Bounded returns a cap of k concurrent tasks. Values below 1 are clamped to 1.
func Bounded(k int) Limit {
	if k < 1 {
		k = 1
	}
	return Limit{n: k}
}

// Unbounded returns the absence of a cap: every task launches immediately.
func Unbounded() Limit {
	return Limit{}
}

// FromFlag maps the CLI convention where 0 (or a negative value) means "no cap".
func FromFlag(n int) Limit {
	if n <= 0 {
		return Unbounded()
	}
	return Bounded(n)
}

// IsUnbounded reports whether the limit imposes no cap.
func (l Limit) IsUnbounded() bool {
	return l.n == 0
}

// Cap returns the numeric cap. Only meaningful when the limit is bounded.
func (l Limit) Cap() int {
	return l.n
}

func (l Limit) String() string {
	if l.IsUnbounded() {
		return "unbounded"
	}
	return strconv.Itoa(l.n)
}

// Task is one deferred unit of work.
type Task[R any] func(ctx context.Context) (R, error)

// Outcome holds the settled result of one task. Err is non-nil when the task
// returned an error or panicked; the batch itself never fails.
type Outcome[R any] struct {
	Value R
	Err   error
}

// Run executes tasks with at most limit.Cap() in flight. Admission is strictly
// FIFO by input index: the semaphore slot is acquired on the submitting
// goroutine, so given free capacity the earliest pending task always starts
// next. Outcome i always corresponds to tasks[i], however the tasks actually
// finish. A failing or panicking task is recorded at its index and never
// stops its siblings; Run returns only once every task has settled.
func Run[R any](ctx context.Context, tasks []Task[R], limit Limit) []Outcome[R] {
	outcomes := make([]Outcome[R], len(tasks))

	var wg sync.WaitGroup
	var sem chan struct{}
	if !limit.IsUnbounded() {
		sem = make(chan struct{}, limit.Cap())
	}

	for i, task := range tasks {
		if sem != nil {
			sem <- struct{}{}
		}
		wg.Add(1)
		go func(i int, task Task[R]) {
			defer wg.Done()
			if sem != nil {
				defer func() { <-sem }()
			}
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].Err = fmt.Errorf("task %d panicked: %v", i, r)
				}
			}()
			v, err := task(ctx)
			outcomes[i] = Outcome[R]{Value: v, Err: err}
		}(i, task)
	}

	wg.Wait()
	return outcomes
}
