package notifier

import (
	"sync"

	"fintrack/internal/logger"
)

// Async runs notification jobs on a single background worker so that
// delivery can never block or fail the request that triggered it.
type Async struct {
	jobs chan func() error
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewAsync creates and starts an Async dispatcher with the given queue size.
func NewAsync(buffer int) *Async {
	a := &Async{jobs: make(chan func() error, buffer)}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *Async) run() {
	defer a.wg.Done()
	for job := range a.jobs {
		if err := job(); err != nil {
			logger.Get().Warnw("notification delivery failed", "error", err)
		}
	}
}

// Dispatch enqueues a job. When the queue is full or the dispatcher is
// closed the job is dropped and logged; callers never wait.
func (a *Async) Dispatch(job func() error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		logger.Get().Warn("notification dispatcher closed, dropping job")
		return
	}
	select {
	case a.jobs <- job:
	default:
		logger.Get().Warn("notification queue full, dropping job")
	}
}

// Close stops accepting jobs and waits for in-flight deliveries.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.jobs)
	}
	a.mu.Unlock()
	a.wg.Wait()
}
