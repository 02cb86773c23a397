// Package parallel runs row bands of a bitmap operation on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines fed from a shared queue.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// submit is held for reading while Run queues tasks; Close takes it
	// for writing before closing done.
	submit sync.RWMutex
}

// NewPool starts a pool. If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		queue:   make(chan func(), max(workers*4, 8)),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.drain()
			return
		case fn := <-p.queue:
			fn()
		}
	}
}

// drain runs the tasks still queued when the pool closes.
func (p *Pool) drain() {
	for {
		select {
		case fn := <-p.queue:
			fn()
		default:
			return
		}
	}
}

// Run executes every task and waits for all of them. Once the pool is
// closed, tasks run on the calling goroutine.
func (p *Pool) Run(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	if p != nil && p.queueAll(tasks) {
		return
	}
	for _, fn := range tasks {
		fn()
	}
}

// queueAll hands tasks to the workers and waits for them. It reports false,
// without running anything, when the pool is closed.
func (p *Pool) queueAll(tasks []func()) bool {
	p.submit.RLock()
	if !p.running.Load() {
		p.submit.RUnlock()
		return false
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, fn := range tasks {
		p.queue <- func() {
			defer wg.Done()
			fn()
		}
	}
	p.submit.RUnlock()

	wg.Wait()
	return true
}

// Close stops the workers once every task already queued has run. Close is
// safe to call multiple times and concurrently with Run.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	p.submit.Lock()
	close(p.done)
	p.submit.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Band is a half-open row range.
type Band struct {
	Y0, Y1 int
}

// Bands splits rows [0, height) into at most n bands of at least minRows
// rows each. The last band takes the remainder.
func Bands(height, n, minRows int) []Band {
	if height <= 0 {
		return nil
	}
	minRows = max(minRows, 1)
	n = max(min(n, height/minRows), 1)

	size := height / n
	bands := make([]Band, 0, n)
	for i := range n {
		y0 := i * size
		y1 := y0 + size
		if i == n-1 {
			y1 = height
		}
		bands = append(bands, Band{Y0: y0, Y1: y1})
	}
	return bands
}

// Rows runs fn over bands of [0, height) on p, or inline when p is nil or
// the height is too small to split.
func (p *Pool) Rows(height, minRows int, fn func(y0, y1 int)) {
	workers := 1
	if p != nil && p.running.Load() {
		workers = p.workers
	}
	bands := Bands(height, workers, minRows)
	if len(bands) <= 1 {
		if height > 0 {
			fn(0, height)
		}
		return
	}

	tasks := make([]func(), len(bands))
	for i, b := range bands {
		tasks[i] = func() { fn(b.Y0, b.Y1) }
	}
	p.Run(tasks)
}
