package motor

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type job struct {
	request Request
	index   int
}

// Dispatcher decouples "send request N" from "the network call finished".
// A single worker goroutine services a capacity-1 job mailbox and delivers
// results through a capacity-1 result mailbox, which is what enforces the
// one-in-flight-request invariant globally: the worker will not pick up
// new work until the previous result has been drained by the UI.
type Dispatcher struct {
	jobs     chan job
	results  chan Result
	executor *Executor
	queue    *MessageQueue
	history  *History
	quit     chan struct{}
	done     chan struct{}

	mu       sync.Mutex
	inFlight bool
}

// NewDispatcher starts the worker. queue must not be nil; history may be
// nil, which disables execution recording.
func NewDispatcher(executor *Executor, queue *MessageQueue, history *History) *Dispatcher {
	d := &Dispatcher{
		jobs:     make(chan job, 1),
		results:  make(chan Result, 1),
		executor: executor,
		queue:    queue,
		history:  history,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go d.work()
	return d
}

// Submit enqueues a request for execution. It never blocks: when the
// previous request's result has not been drained yet it returns
// ErrRequestInFlight and the caller surfaces that to the user.
func (d *Dispatcher) Submit(req Request, index int) error {
	select {
	case d.jobs <- job{request: req.Clone(), index: index}:
		return nil
	default:
		return ErrRequestInFlight
	}
}

// TryResult drains a completed response without blocking. Called once per
// UI tick.
func (d *Dispatcher) TryResult() (Result, bool) {
	select {
	case res := <-d.results:
		return res, true
	default:
		return Result{}, false
	}
}

// Busy reports whether a submitted request has not produced a drained
// result yet. Best effort, used only for the in-flight spinner.
func (d *Dispatcher) Busy() bool {
	return len(d.jobs) > 0 || len(d.results) > 0 || d.working()
}

func (d *Dispatcher) working() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight
}

func (d *Dispatcher) setInFlight(v bool) {
	d.mu.Lock()
	d.inFlight = v
	d.mu.Unlock()
}

// Close stops the worker once the current request, if any, completes.
// quit must close before the wait on done: the worker may be parked on
// the result mailbox with nobody left to drain it.
func (d *Dispatcher) Close() {
	close(d.quit)
	close(d.jobs)
	<-d.done
}

func (d *Dispatcher) work() {
	defer close(d.done)
	for j := range d.jobs {
		d.setInFlight(true)
		start := time.Now()
		resp, err := d.executor.Execute(context.Background(), j.request)
		elapsed := time.Since(start)
		d.setInFlight(false)

		if err != nil {
			d.queue.Error(err.Error())
			d.record(j.request, 0, elapsed)
			continue
		}

		d.record(j.request, resp.Status, elapsed)
		select {
		case d.results <- Result{Response: resp, Index: j.index}:
		case <-d.quit:
			return
		}
	}
}

func (d *Dispatcher) record(req Request, status int, elapsed time.Duration) {
	if d.history == nil {
		return
	}
	if err := d.history.Record(req, status, elapsed); err != nil {
		d.queue.Error(fmt.Sprintf("history: %v", err))
	}
}
