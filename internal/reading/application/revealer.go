package application

import (
	"sync"
	"time"
)

// Revealer fires fn(i) for i = 0..count-1, card i at (i+1)*interval after
// Start. Calls are strictly ordered and stop after Cancel.
type Revealer struct {
	clock    Clock
	interval time.Duration
	count    int
	fn       func(index int)

	once   sync.Once
	stop   chan struct{}
	done   chan struct{}
	mu     sync.Mutex
	fired  int
	cancel bool
}

// NewRevealer creates a Revealer. It does nothing until Start.
func NewRevealer(clock Clock, interval time.Duration, count int, fn func(index int)) *Revealer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Revealer{
		clock:    clock,
		interval: interval,
		count:    count,
		fn:       fn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the sequence in its own goroutine.
func (r *Revealer) Start() {
	go r.run()
}

func (r *Revealer) run() {
	defer close(r.done)
	for i := 0; i < r.count; i++ {
		select {
		case <-r.stop:
			return
		case <-r.clock.After(r.interval):
		}

		r.mu.Lock()
		if r.cancel {
			r.mu.Unlock()
			return
		}
		r.fired = i + 1
		r.mu.Unlock()

		r.fn(i)
	}
}

// Cancel stops further callbacks. It is safe to call more than once.
func (r *Revealer) Cancel() {
	r.once.Do(func() {
		r.mu.Lock()
		r.cancel = true
		r.mu.Unlock()
		close(r.stop)
	})
}

// Done is closed when the sequence finishes or is cancelled.
func (r *Revealer) Done() <-chan struct{} {
	return r.done
}

// firedCount returns how many callbacks have run.
func (r *Revealer) firedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired
}
