// internal/worker/pool.go
package worker

import (
	"sync"
)

// Pool bounds how many submitted tasks run at once. Submit blocks until a
// slot frees up, so with a single slot tasks run strictly in submission
// order.
type Pool struct {
	wg    sync.WaitGroup
	slots chan struct{}
}

// NewPool creates a new worker pool with the specified number of slots
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		slots: make(chan struct{}, size),
	}
}

// Submit acquires a slot and runs the task on its own goroutine
func (p *Pool) Submit(task func()) {
	p.slots <- struct{}{} // Acquire a slot
	p.wg.Add(1)

	go func() {
		defer func() {
			<-p.slots // Release the slot
			p.wg.Done()
		}()

		task()
	}()
}

// Wait waits for all submitted tasks to complete
func (p *Pool) Wait() {
	p.wg.Wait()
}
